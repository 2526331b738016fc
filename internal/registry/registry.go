// Package registry dispatches AIS binary payloads to per-(DAC, FID)
// decoders.
//
// The umbrella AIS decoder extracts application-specific sub-messages
// from message types 6, 8, 25 and 26 as an opaque bit sequence tagged
// with a Designated Area Code and Function Identifier. This package
// holds the table mapping each supported (dac, fid) pair to its decoder
// and the single entry point, Decode.
package registry

import (
	"errors"
	"sort"

	"ais_watch/internal/bits"
)

// Message is implemented by every decoded binary message. Concrete
// types live in the per-authority decoder packages and marshal to JSON
// for storage and display.
type Message interface {
	// DAC returns the Designated Area Code that produced the message.
	DAC() int

	// FID returns the Function Identifier within the DAC's namespace.
	FID() int

	// Name returns a short stable identifier, e.g. "met_hydro".
	Name() string
}

// DecodeFunc decodes one fixed (dac, fid) layout from a cursor. It is a
// pure function of the payload: no side effects, safe for concurrent
// callers.
type DecodeFunc func(c *bits.Cursor) (Message, error)

// Entry describes one supported (dac, fid) pair.
type Entry struct {
	DAC        int
	FID        int
	Name       string
	Deprecated bool // superseded layout, still decoded identically
	Decode     DecodeFunc
}

// Registry is an immutable (dac, fid) -> decoder table. Build it once
// with New and share it freely; it holds no mutable state.
type Registry struct {
	table map[tableKey]Entry
}

// Decode accepts unconstrained ints, so the key must never alias two
// distinct pairs. FID is 6 bits on the wire but callers may pass
// anything.
type tableKey struct {
	dac, fid int
}

// New builds a registry from the given entries.
func New(entries ...Entry) *Registry {
	t := make(map[tableKey]Entry, len(entries))
	for _, e := range entries {
		t[tableKey{e.DAC, e.FID}] = e
	}
	return &Registry{table: t}
}

// Lookup returns the entry for (dac, fid), if any.
func (r *Registry) Lookup(dac, fid int) (Entry, bool) {
	e, ok := r.table[tableKey{dac, fid}]
	return e, ok
}

// Supported returns all registered entries ordered by (dac, fid).
func (r *Registry) Supported() []Entry {
	out := make([]Entry, 0, len(r.table))
	for _, e := range r.table {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DAC != out[j].DAC {
			return out[i].DAC < out[j].DAC
		}
		return out[i].FID < out[j].FID
	})
	return out
}

// Decode decodes a binary payload of bitLength bits. Unknown (dac, fid)
// pairs return a DecodeError of kind Unsupported without reading data.
// On success the returned Message is complete; on failure no partial
// result is returned.
func (r *Registry) Decode(dac, fid int, data []byte, bitLength int) (Message, error) {
	entry, ok := r.Lookup(dac, fid)
	if !ok {
		return nil, &DecodeError{Kind: Unsupported, DAC: dac, FID: fid}
	}

	c := bits.NewCursor(bits.NewPayload(data, bitLength))
	msg, err := entry.Decode(c)
	if err == nil {
		err = c.Err()
	}
	if err != nil {
		return nil, r.wrapErr(dac, fid, err)
	}
	return msg, nil
}

// wrapErr normalises decoder failures into DecodeError with the
// (dac, fid) pair filled in.
func (r *Registry) wrapErr(dac, fid int, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		de.DAC = dac
		de.FID = fid
		return de
	}
	var te *bits.TruncatedError
	if errors.As(err, &te) {
		return &DecodeError{
			Kind:      Truncated,
			DAC:       dac,
			FID:       fid,
			Field:     te.Field,
			BitOffset: te.Offset,
		}
	}
	return err
}
