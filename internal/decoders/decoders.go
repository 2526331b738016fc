// Package decoders assembles the full (DAC, FID) decoder table from the
// per-authority packages and exposes the decode entry point the rest of
// the system calls.
package decoders

import (
	"ais_watch/internal/decoders/dac001"
	"ais_watch/internal/decoders/dac200"
	"ais_watch/internal/decoders/dac367"
	"ais_watch/internal/registry"
)

// table is built once at startup from plain function references; it is
// never mutated afterwards, so Decode is safe for concurrent callers.
var table = Table()

// Table builds a fresh registry covering every supported authority.
func Table() *registry.Registry {
	var entries []registry.Entry
	entries = append(entries, dac001.Entries()...)
	entries = append(entries, dac200.Entries()...)
	entries = append(entries, dac367.Entries()...)
	return registry.New(entries...)
}

// Decode decodes the binary payload of an AIS type 6/8/25/26 message.
// data is the payload byte buffer and bitLength its exact bit count
// (pass a negative value to use the full buffer).
func Decode(dac, fid int, data []byte, bitLength int) (registry.Message, error) {
	return table.Decode(dac, fid, data, bitLength)
}

// Supported lists every registered (dac, fid) entry.
func Supported() []registry.Entry {
	return table.Supported()
}

// Lookup returns the table entry for (dac, fid), if any.
func Lookup(dac, fid int) (registry.Entry, bool) {
	return table.Lookup(dac, fid)
}
