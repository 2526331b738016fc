// Package bits provides bit-level extraction for AIS binary payloads.
//
// AIS application-specific messages pack fields at arbitrary bit
// boundaries, not aligned to bytes. Payload wraps a byte buffer with its
// exact bit length (the over-the-air length is rarely a multiple of 8)
// and Cursor reads fields from it sequentially, MSB first.
package bits

import "fmt"

// Payload is an immutable bit sequence: a byte buffer plus the exact
// number of valid bits. Bits beyond Len are padding and never read.
type Payload struct {
	data  []byte
	nbits int
}

// NewPayload wraps data as a bit sequence of nbits bits. If nbits is
// negative or exceeds the buffer, the buffer's full bit length is used.
func NewPayload(data []byte, nbits int) Payload {
	max := len(data) * 8
	if nbits < 0 || nbits > max {
		nbits = max
	}
	return Payload{data: data, nbits: nbits}
}

// Len returns the number of valid bits in the payload.
func (p Payload) Len() int { return p.nbits }

// TruncatedError reports a read that would run past the end of the
// payload. It carries the field being decoded and the bit offset so the
// failure can be diagnosed without re-running the decode.
type TruncatedError struct {
	Field     string // field being read when the payload ran out
	Offset    int    // bit offset of the attempted read
	Width     int    // bits requested
	Remaining int    // bits that were actually left
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("payload truncated at field %q: need %d bits at offset %d, %d remaining",
		e.Field, e.Width, e.Offset, e.Remaining)
}

// Cursor reads bit fields from a Payload, advancing monotonically
// forward. There is no seek-backward: decoders are forward-only state
// machines over the bit stream, mirroring the over-the-air bit order.
//
// The cursor uses a sticky-error model: the first read that would exceed
// the payload records a TruncatedError and every later read returns the
// zero value without advancing. Decoders issue their full read sequence
// and check Err once at the end; on error the whole result is discarded,
// so no partial field values ever escape.
type Cursor struct {
	p   Payload
	pos int
	err *TruncatedError
}

// NewCursor returns a cursor positioned at bit 0 of p.
func NewCursor(p Payload) *Cursor {
	return &Cursor{p: p}
}

// Pos returns the current bit offset.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bits. Substructure loops use
// this to decide whether another record fits.
func (c *Cursor) Remaining() int { return c.p.nbits - c.pos }

// Err returns the first truncation encountered, or nil.
func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return nil
}

// fail records the first truncation. Later reads keep returning zero.
func (c *Cursor) fail(field string, width int) {
	if c.err == nil {
		c.err = &TruncatedError{
			Field:     field,
			Offset:    c.pos,
			Width:     width,
			Remaining: c.Remaining(),
		}
	}
}

// Uint reads width bits (1-32) as an unsigned integer, MSB first.
func (c *Cursor) Uint(field string, width int) uint32 {
	if width < 1 || width > 32 {
		panic(fmt.Sprintf("bits: Uint width %d out of range", width))
	}
	if c.err != nil {
		return 0
	}
	if c.Remaining() < width {
		c.fail(field, width)
		return 0
	}
	var v uint32
	for i := 0; i < width; i++ {
		bit := c.pos + i
		if c.p.data[bit/8]&(1<<(7-uint(bit%8))) != 0 {
			v |= 1 << uint(width-1-i)
		}
	}
	c.pos += width
	return v
}

// Int reads width bits as a two's-complement signed integer.
func (c *Cursor) Int(field string, width int) int32 {
	v := int64(c.Uint(field, width))
	if c.err != nil {
		return 0
	}
	if v&(1<<uint(width-1)) != 0 {
		v -= 1 << uint(width)
	}
	return int32(v)
}

// Bool reads a single bit as a flag.
func (c *Cursor) Bool(field string) bool {
	return c.Uint(field, 1) == 1
}

// Text reads chars six-bit characters and decodes them via the AIS
// six-bit ASCII table, stripping trailing '@' (null) and space padding.
func (c *Cursor) Text(field string, chars int) string {
	buf := make([]byte, 0, chars)
	for i := 0; i < chars; i++ {
		v := c.Uint(field, 6)
		if c.err != nil {
			return ""
		}
		buf = append(buf, sixbitChar(v))
	}
	end := len(buf)
	for end > 0 && (buf[end-1] == '@' || buf[end-1] == ' ') {
		end--
	}
	return string(buf[:end])
}

// Skip advances past width bits without decoding (spare/reserved
// regions). Skipping past the end clamps to the end: trailing spare
// bits are routinely dropped by transmitters.
func (c *Cursor) Skip(width int) {
	if c.err != nil {
		return
	}
	c.pos += width
	if c.pos > c.p.nbits {
		c.pos = c.p.nbits
	}
}

// UFloat reads width unsigned bits and applies scale. When the raw
// value equals sentinel the field is not available and nil is returned,
// keeping "unavailable" distinct from a decoded zero.
func (c *Cursor) UFloat(field string, width int, scale float64, sentinel uint32) *float64 {
	raw := c.Uint(field, width)
	if c.err != nil || raw == sentinel {
		return nil
	}
	v := float64(raw) / scale
	return &v
}

// UFloatOff is UFloat with an additive offset applied after scaling,
// for fields transmitted as (value - offset) * scale.
func (c *Cursor) UFloatOff(field string, width int, scale, offset float64, sentinel uint32) *float64 {
	raw := c.Uint(field, width)
	if c.err != nil || raw == sentinel {
		return nil
	}
	v := float64(raw)/scale + offset
	return &v
}

// SFloat is the signed counterpart of UFloat.
func (c *Cursor) SFloat(field string, width int, scale float64, sentinel int32) *float64 {
	raw := c.Int(field, width)
	if c.err != nil || raw == sentinel {
		return nil
	}
	v := float64(raw) / scale
	return &v
}

// Standard AIS not-available position sentinels: 181 degrees longitude
// and 91 degrees latitude, expressed in the field's raw resolution.
const (
	lonSentinel   = 181 * 60000  // 25-bit, 1/1000 arc-minute
	latSentinel   = 91 * 60000   // 24-bit
	lonSentinel28 = 181 * 600000 // 28-bit, 1/10000 arc-minute
	latSentinel28 = 91 * 600000  // 27-bit
)

// Lon reads a 25-bit signed longitude in 1/1000 arc-minutes and returns
// decimal degrees, nil when not available.
func (c *Cursor) Lon(field string) *float64 {
	return c.SFloat(field, 25, 60000, lonSentinel)
}

// Lat reads a 24-bit signed latitude in 1/1000 arc-minutes.
func (c *Cursor) Lat(field string) *float64 {
	return c.SFloat(field, 24, 60000, latSentinel)
}

// Lon28 reads a 28-bit signed longitude in 1/10000 arc-minutes.
func (c *Cursor) Lon28(field string) *float64 {
	return c.SFloat(field, 28, 600000, lonSentinel28)
}

// Lat28 reads a 27-bit signed latitude in 1/10000 arc-minutes.
func (c *Cursor) Lat28(field string) *float64 {
	return c.SFloat(field, 27, 600000, latSentinel28)
}
