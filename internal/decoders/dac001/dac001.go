// Package dac001 decodes DAC 001 (international / IMO) binary messages.
//
// Layouts follow IMO SN.1/Circ.236 and Circ.289, cross-checked against
// the GPSD AIVDM documentation. FID 11 is deprecated (superseded by
// FID 31) but still transmitted and decoded identically.
package dac001

import "ais_watch/internal/registry"

// Entries returns the decoder table entries for DAC 001.
func Entries() []registry.Entry {
	return []registry.Entry{
		{DAC: 1, FID: 11, Name: "met_hydro_236", Deprecated: true, Decode: decodeMetHydro236},
		{DAC: 1, FID: 13, Name: "fairway_closed", Decode: decodeFairwayClosed},
		{DAC: 1, FID: 15, Name: "air_draught", Decode: decodeAirDraught},
		{DAC: 1, FID: 16, Name: "persons_on_board", Decode: decodePersons},
		{DAC: 1, FID: 17, Name: "vts_targets", Decode: decodeVTSTargets},
		{DAC: 1, FID: 19, Name: "marine_traffic_signal", Decode: decodeTrafficSignal},
		{DAC: 1, FID: 21, Name: "weather_observation", Decode: decodeWeatherObs},
		{DAC: 1, FID: 22, Name: "area_notice", Decode: decodeAreaNotice},
		{DAC: 1, FID: 24, Name: "extended_static", Decode: decodeExtendedStatic},
		{DAC: 1, FID: 27, Name: "route_info", Decode: decodeRoute},
		{DAC: 1, FID: 29, Name: "text_description", Decode: decodeText},
		{DAC: 1, FID: 31, Name: "met_hydro", Decode: decodeMetHydro},
	}
}
