// Package dac367 decodes DAC 367 (US Coast Guard / NOAA) binary
// messages: the US Area Notice variant and environmental sensor
// reports from the PAWSS shore network.
package dac367

import "ais_watch/internal/registry"

// Entries returns the decoder table entries for DAC 367.
func Entries() []registry.Entry {
	return []registry.Entry{
		{DAC: 367, FID: 22, Name: "area_notice_us", Decode: decodeAreaNoticeUS},
		{DAC: 367, FID: 33, Name: "environmental", Decode: decodeEnvironmental},
	}
}
