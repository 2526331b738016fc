package ais

import (
	"errors"
	"fmt"

	"ais_watch/internal/bits"
)

// ErrNotBinary marks frames whose message type carries no
// application-specific binary payload. Callers skip these.
var ErrNotBinary = errors.New("not a binary message type")

// ErrUnstructured marks type 25/26 frames whose structured flag is
// clear: the payload has no DAC/FID application identifier and cannot
// be routed to a decoder.
var ErrUnstructured = errors.New("unstructured binary broadcast")

// Binary is the envelope of an application-specific message with its
// DAC/FID-tagged payload peeled out, ready for the decoder table.
type Binary struct {
	MsgType    int    `json:"msg_type"`
	Repeat     int    `json:"repeat"`
	MMSI       int    `json:"mmsi"`
	SeqNo      int    `json:"seq_no,omitempty"`     // type 6 only
	DestMMSI   int    `json:"dest_mmsi,omitempty"`  // types 6 and addressed 25/26
	Retransmit bool   `json:"retransmit,omitempty"` // type 6 only
	DAC        int    `json:"dac"`
	FID        int    `json:"fid"`
	Data       []byte `json:"-"`
	BitLength  int    `json:"bit_length"`
}

// IsBinaryType reports whether an AIS message type carries an
// application-specific binary payload.
func IsBinaryType(t int) bool {
	return t == 6 || t == 8 || t == 25 || t == 26
}

// DecodeFrame parses the outer frame of a dearmored AIS message and
// extracts the binary payload from types 6, 8, 25 and 26. Other types
// return ErrNotBinary; unstructured 25/26 frames return ErrUnstructured.
func DecodeFrame(data []byte, nbits int) (*Binary, error) {
	c := bits.NewCursor(bits.NewPayload(data, nbits))
	b := &Binary{
		MsgType: int(c.Uint("msg_type", 6)),
		Repeat:  int(c.Uint("repeat", 2)),
		MMSI:    int(c.Uint("mmsi", 30)),
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	switch b.MsgType {
	case 6:
		// Addressed binary message: sequence number, destination,
		// retransmit flag, spare, then the application identifier.
		b.SeqNo = int(c.Uint("seq_no", 2))
		b.DestMMSI = int(c.Uint("dest_mmsi", 30))
		b.Retransmit = c.Bool("retransmit")
		c.Skip(1)
		b.DAC = int(c.Uint("dac", 10))
		b.FID = int(c.Uint("fid", 6))
	case 8:
		// Broadcast binary message: spare then application identifier.
		c.Skip(2)
		b.DAC = int(c.Uint("dac", 10))
		b.FID = int(c.Uint("fid", 6))
	case 25, 26:
		addressed := c.Bool("addressed")
		structured := c.Bool("structured")
		if addressed {
			b.DestMMSI = int(c.Uint("dest_mmsi", 30))
		}
		if err := c.Err(); err != nil {
			return nil, err
		}
		if !structured {
			return nil, ErrUnstructured
		}
		b.DAC = int(c.Uint("dac", 10))
		b.FID = int(c.Uint("fid", 6))
	default:
		return nil, fmt.Errorf("%w: type %d", ErrNotBinary, b.MsgType)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	n := c.Remaining()
	if b.MsgType == 26 && n >= 20 {
		// Type 26 carries its radio status in the final 20 bits.
		n -= 20
	}
	b.Data = bits.SubBits(data, c.Pos(), n)
	b.BitLength = n
	return b, nil
}
