package area

import (
	"errors"
	"testing"

	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// packBits builds a payload from (value, width) pairs, MSB first.
func packBits(fields ...[2]uint64) ([]byte, int) {
	var raw []bool
	for _, f := range fields {
		v, w := f[0], int(f[1])
		for i := w - 1; i >= 0; i-- {
			raw = append(raw, (v>>uint(i))&1 == 1)
		}
	}
	out := make([]byte, (len(raw)+7)/8)
	for i, b := range raw {
		if b {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out, len(raw)
}

func cursorFor(data []byte, nbits int) *bits.Cursor {
	return bits.NewCursor(bits.NewPayload(data, nbits))
}

// circleFields is an 87-bit circle record: 69 layout bits plus 18
// spare bits padding to the IMO record size.
func circleFields(radius uint64) [][2]uint64 {
	return [][2]uint64{
		{ShapeCircle, 3},
		{1, 2},          // scale factor
		{60000, 25},     // longitude, 1 degree east
		{2 * 60000, 24}, // latitude, 2 degrees north
		{4, 3},          // precision
		{radius, 12},
		{0, 18}, // spare to the record boundary
	}
}

func TestDecodeListEmpty(t *testing.T) {
	c := cursorFor(nil, 0)
	list, err := DecodeList(c, RecordBitsIMO)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d sub-areas, want 0", len(list))
	}
}

func TestDecodeListShortTail(t *testing.T) {
	// 40 trailing bits is less than one record; they are ignored.
	c := cursorFor(make([]byte, 5), 40)
	list, err := DecodeList(c, RecordBitsIMO)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d sub-areas, want 0", len(list))
	}
}

func TestDecodeListCircle(t *testing.T) {
	data, nbits := packBits(circleFields(500)...)
	c := cursorFor(data, nbits)
	list, err := DecodeList(c, RecordBitsIMO)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d sub-areas, want 1", len(list))
	}
	circ, ok := list[0].(Circle)
	if !ok {
		t.Fatalf("sub-area type %T, want Circle", list[0])
	}
	if circ.ScaleFactor != 1 || circ.Precision != 4 || circ.RadiusM != 500 {
		t.Errorf("Circle = %+v, want scale=1 precision=4 radius=500", circ)
	}
	if circ.Longitude == nil || *circ.Longitude != 1.0 {
		t.Errorf("Longitude = %v, want 1.0", circ.Longitude)
	}
	if circ.Latitude == nil || *circ.Latitude != 2.0 {
		t.Errorf("Latitude = %v, want 2.0", circ.Latitude)
	}
	if c.Pos() != RecordBitsIMO {
		t.Errorf("cursor at bit %d after one record, want %d", c.Pos(), RecordBitsIMO)
	}
}

func TestDecodeListCircleThenText(t *testing.T) {
	// The 18 spare bits of the circle must be skipped so the second
	// record's shape tag lands on the 87-bit boundary.
	fields := circleFields(0)
	fields = append(fields, [2]uint64{ShapeText, 3})
	for _, ch := range "NO ENTRY" {
		fields = append(fields, [2]uint64{uint64(ch) % 64, 6})
	}
	for i := len("NO ENTRY"); i < 14; i++ {
		fields = append(fields, [2]uint64{0, 6}) // '@' padding
	}
	data, nbits := packBits(fields...)
	list, err := DecodeList(cursorFor(data, nbits), RecordBitsIMO)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d sub-areas, want 2", len(list))
	}
	txt, ok := list[1].(Text)
	if !ok {
		t.Fatalf("second sub-area type %T, want Text", list[1])
	}
	if txt.Text != "NO ENTRY" {
		t.Errorf("Text = %q, want %q", txt.Text, "NO ENTRY")
	}
}

func TestDecodeListPolygon(t *testing.T) {
	fields := [][2]uint64{
		{ShapePolygon, 3},
		{2, 2},
	}
	for i := 0; i < 4; i++ {
		fields = append(fields, [2]uint64{uint64(100 + i), 10}, [2]uint64{uint64(10 * i), 10})
	}
	fields = append(fields, [2]uint64{0, 2}) // spare to 87
	data, nbits := packBits(fields...)
	list, err := DecodeList(cursorFor(data, nbits), RecordBitsIMO)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	poly, ok := list[0].(Polygon)
	if !ok {
		t.Fatalf("sub-area type %T, want Polygon", list[0])
	}
	if poly.ScaleFactor != 2 {
		t.Errorf("ScaleFactor = %d, want 2", poly.ScaleFactor)
	}
	if poly.Legs[3].Angle != 103 || poly.Legs[3].Dist != 30 {
		t.Errorf("Legs[3] = %+v, want angle=103 dist=30", poly.Legs[3])
	}
}

func TestDecodeListUnknownShape(t *testing.T) {
	fields := circleFields(0)
	fields = append(fields, [2]uint64{7, 3}, [2]uint64{0, 84})
	data, nbits := packBits(fields...)
	list, err := DecodeList(cursorFor(data, nbits), RecordBitsIMO)
	if list != nil {
		t.Errorf("got %d sub-areas, want none on error", len(list))
	}
	var de *registry.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not *DecodeError", err)
	}
	if de.Kind != registry.UnknownDiscriminator {
		t.Errorf("Kind = %v, want unknown discriminator", de.Kind)
	}
	if de.Discriminator != 7 || de.RecordIndex != 1 || de.BitOffset != RecordBitsIMO {
		t.Errorf("DecodeError = %+v, want discriminator=7 record=1 offset=%d", de, RecordBitsIMO)
	}
}

func TestDecodeListUSRecordSize(t *testing.T) {
	// US records are 90 bits; two circles back to back.
	var all [][2]uint64
	for i := 0; i < 2; i++ {
		all = append(all, circleFields(uint64(i+1))...)
		all = append(all, [2]uint64{0, 3}) // US pad
	}
	data, nbits := packBits(all...)
	list, err := DecodeList(cursorFor(data, nbits), RecordBitsUS)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d sub-areas, want 2", len(list))
	}
	if list[1].(Circle).RadiusM != 2 {
		t.Errorf("second circle radius = %d, want 2", list[1].(Circle).RadiusM)
	}
}
