package registry

import "fmt"

// ErrorKind classifies decode failures. All three kinds are recoverable
// at the call site: callers log and skip the message.
type ErrorKind int

const (
	// Unsupported means no decoder is registered for the (dac, fid)
	// pair. Expected and frequent in live traffic, not a bug.
	Unsupported ErrorKind = iota

	// Truncated means the payload held fewer bits than the layout
	// requires. Indicates upstream corruption or a misidentified FID.
	Truncated

	// UnknownDiscriminator means a substructure's type tag matched no
	// known record shape. The remaining bit layout cannot be trusted,
	// so the whole message is rejected.
	UnknownDiscriminator
)

func (k ErrorKind) String() string {
	switch k {
	case Unsupported:
		return "unsupported"
	case Truncated:
		return "truncated"
	case UnknownDiscriminator:
		return "unknown discriminator"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DecodeError is the structured failure returned by Decode. Field,
// BitOffset, Discriminator and RecordIndex are populated where they
// apply to the Kind.
type DecodeError struct {
	Kind          ErrorKind
	DAC           int
	FID           int
	Field         string // field being read when truncation hit
	BitOffset     int    // bit offset of the failed read
	Discriminator uint32 // offending substructure type tag
	RecordIndex   int    // index of the substructure record
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case Unsupported:
		return fmt.Sprintf("no decoder for dac %d fid %d", e.DAC, e.FID)
	case Truncated:
		return fmt.Sprintf("dac %d fid %d: payload truncated at field %q (bit %d)",
			e.DAC, e.FID, e.Field, e.BitOffset)
	case UnknownDiscriminator:
		return fmt.Sprintf("dac %d fid %d: unknown discriminator %d in record %d (bit %d)",
			e.DAC, e.FID, e.Discriminator, e.RecordIndex, e.BitOffset)
	}
	return fmt.Sprintf("dac %d fid %d: decode error", e.DAC, e.FID)
}

// NewUnknownDiscriminator builds the error raised by substructure
// decoders when a record's type tag is unassigned. The registry fills
// in DAC and FID on the way out.
func NewUnknownDiscriminator(value uint32, recordIndex, bitOffset int) *DecodeError {
	return &DecodeError{
		Kind:          UnknownDiscriminator,
		Discriminator: value,
		RecordIndex:   recordIndex,
		BitOffset:     bitOffset,
	}
}
