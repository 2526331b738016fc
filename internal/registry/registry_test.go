package registry

import (
	"errors"
	"testing"

	"ais_watch/internal/bits"
)

type testMsg struct {
	Value uint32
}

func (*testMsg) DAC() int     { return 9 }
func (*testMsg) FID() int     { return 9 }
func (*testMsg) Name() string { return "test" }

func decodeTest(c *bits.Cursor) (Message, error) {
	m := &testMsg{Value: c.Uint("value", 16)}
	return m, c.Err()
}

func testRegistry() *Registry {
	return New(Entry{DAC: 9, FID: 9, Name: "test", Decode: decodeTest})
}

func TestDecodeSuccess(t *testing.T) {
	r := testRegistry()
	msg, err := r.Decode(9, 9, []byte{0xBE, 0xEF}, 16)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, ok := msg.(*testMsg)
	if !ok {
		t.Fatalf("message type %T, want *testMsg", msg)
	}
	if got.Value != 0xBEEF {
		t.Errorf("Value = %#x, want 0xBEEF", got.Value)
	}
}

func TestDecodeIdempotent(t *testing.T) {
	// Decoding the same bytes twice yields the same result: the table
	// and the decoders hold no state.
	r := testRegistry()
	data := []byte{0x12, 0x34}
	a, err1 := r.Decode(9, 9, data, 16)
	b, err2 := r.Decode(9, 9, data, 16)
	if err1 != nil || err2 != nil {
		t.Fatalf("Decode errors: %v, %v", err1, err2)
	}
	if a.(*testMsg).Value != b.(*testMsg).Value {
		t.Errorf("repeat decode differs: %#x vs %#x", a.(*testMsg).Value, b.(*testMsg).Value)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	r := testRegistry()
	msg, err := r.Decode(1, 63, []byte{0xFF}, 8)
	if msg != nil {
		t.Errorf("unexpected message %v", msg)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not *DecodeError", err)
	}
	if de.Kind != Unsupported || de.DAC != 1 || de.FID != 63 {
		t.Errorf("DecodeError = %+v, want kind=unsupported dac=1 fid=63", de)
	}
}

func TestDecodeOutOfRangeFID(t *testing.T) {
	// FID is 6 bits on the wire but the parameter is an int: a fid
	// that shares the low bits of a registered entry must still be
	// unsupported, never dispatched to that entry's decoder.
	r := testRegistry()
	for _, fid := range []int{9 + 64, 9 + 128, -55} {
		msg, err := r.Decode(9, fid, []byte{0xBE, 0xEF}, 16)
		if msg != nil {
			t.Errorf("Decode(9, %d) returned %v, want nil", fid, msg)
		}
		var de *DecodeError
		if !errors.As(err, &de) || de.Kind != Unsupported {
			t.Errorf("Decode(9, %d) error = %v, want unsupported", fid, err)
			continue
		}
		if de.DAC != 9 || de.FID != fid {
			t.Errorf("DecodeError = %+v, want dac=9 fid=%d", de, fid)
		}
	}
	if _, ok := r.Lookup(9, 9+64); ok {
		t.Error("Lookup(9, 73) should fail")
	}
}

func TestDecodeUnsupportedIgnoresPayload(t *testing.T) {
	// Unknown pairs must be rejected before the payload is touched:
	// a nil buffer is fine.
	r := testRegistry()
	_, err := r.Decode(123, 45, nil, -1)
	var de *DecodeError
	if !errors.As(err, &de) || de.Kind != Unsupported {
		t.Fatalf("error = %v, want unsupported DecodeError", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	r := testRegistry()
	msg, err := r.Decode(9, 9, []byte{0xFF}, 8)
	if msg != nil {
		t.Errorf("unexpected message %v, partial results must not escape", msg)
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not *DecodeError", err)
	}
	if de.Kind != Truncated || de.DAC != 9 || de.FID != 9 {
		t.Errorf("DecodeError = %+v, want kind=truncated dac=9 fid=9", de)
	}
	if de.Field != "value" || de.BitOffset != 0 {
		t.Errorf("DecodeError = %+v, want field=value offset=0", de)
	}
}

func TestLookup(t *testing.T) {
	r := testRegistry()
	if _, ok := r.Lookup(9, 9); !ok {
		t.Error("Lookup(9, 9) should succeed")
	}
	if _, ok := r.Lookup(9, 10); ok {
		t.Error("Lookup(9, 10) should fail")
	}
}

func TestSupportedSorted(t *testing.T) {
	r := New(
		Entry{DAC: 200, FID: 10, Decode: decodeTest},
		Entry{DAC: 1, FID: 31, Decode: decodeTest},
		Entry{DAC: 1, FID: 11, Decode: decodeTest},
		Entry{DAC: 367, FID: 22, Decode: decodeTest},
	)
	got := r.Supported()
	want := [][2]int{{1, 11}, {1, 31}, {200, 10}, {367, 22}}
	if len(got) != len(want) {
		t.Fatalf("Supported returned %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].DAC != w[0] || got[i].FID != w[1] {
			t.Errorf("entry %d = %d/%d, want %d/%d", i, got[i].DAC, got[i].FID, w[0], w[1])
		}
	}
}

func TestErrorKindStrings(t *testing.T) {
	if Unsupported.String() != "unsupported" ||
		Truncated.String() != "truncated" ||
		UnknownDiscriminator.String() != "unknown discriminator" {
		t.Error("ErrorKind strings changed; these appear in stored output")
	}
}
