// Package dac200 decodes DAC 200 (European inland waterways) binary
// messages, as used on the Rhine, Danube and other EU waterways.
//
// Layouts follow the CCNR Inland ECDIS standard and EU Directive
// 2005/44/EC, cross-checked against the GPSD AIVDM documentation.
package dac200

import (
	"fmt"

	"ais_watch/internal/registry"
)

// Entries returns the decoder table entries for DAC 200.
func Entries() []registry.Entry {
	return []registry.Entry{
		{DAC: 200, FID: 10, Name: "inland_static", Decode: decodeInlandStatic},
		{DAC: 200, FID: 21, Name: "eta_at_lock", Decode: decodeETA},
		{DAC: 200, FID: 22, Name: "rta_at_lock", Decode: decodeRTA},
		{DAC: 200, FID: 23, Name: "emma_warning", Decode: decodeEMMA},
		{DAC: 200, FID: 24, Name: "water_levels", Decode: decodeWaterLevels},
		{DAC: 200, FID: 40, Name: "signal_status", Decode: decodeSignalStatus},
		{DAC: 200, FID: 55, Name: "persons_on_board", Decode: decodePersonsInland},
	}
}

// inlandShipTypes maps ERI ship type codes to their descriptions.
var inlandShipTypes = map[int]string{
	8000: "Vessel, type unknown",
	8010: "Motor freighter",
	8020: "Motor tanker",
	8021: "Motor tanker, liquid cargo, type N",
	8022: "Motor tanker, liquid cargo, type C",
	8023: "Motor tanker, dry cargo as if liquid",
	8030: "Container vessel",
	8040: "Gas tanker",
	8050: "Motor freighter, tug",
	8060: "Motor tanker, tug",
	8070: "Motor freighter with one or more ships alongside",
	8080: "Motor freighter with tanker",
	8090: "Motor freighter pushing one or more freighters",
	8100: "Motor freighter pushing at least one tank-Loss",
	8110: "Tug, freighter",
	8120: "Tug, tanker",
	8130: "Tug, freighter, coupled",
	8140: "Tug, freighter/tanker, coupled",
	8150: "Freightbarge",
	8160: "Tankbarge",
	8161: "Tankbarge, liquid cargo, type N",
	8162: "Tankbarge, liquid cargo, type C",
	8163: "Tankbarge, dry cargo as if liquid",
	8170: "Freightbarge with containers",
	8180: "Tankbarge, gas",
	8210: "Pushtow, one cargo barge",
	8220: "Pushtow, two cargo barges",
	8230: "Pushtow, three cargo barges",
	8240: "Pushtow, four cargo barges",
	8250: "Pushtow, five cargo barges",
	8260: "Pushtow, six cargo barges",
	8270: "Pushtow, seven cargo barges",
	8280: "Pushtow, eight cargo barges",
	8290: "Pushtow, nine or more cargo barges",
	8310: "Pushtow, one tank/gas barge",
	8320: "Pushtow, two barges at least one tanker or gas barge",
	8330: "Pushtow, three barges at least one tanker or gas barge",
	8340: "Pushtow, four barges at least one tanker or gas barge",
	8350: "Pushtow, five barges at least one tanker or gas barge",
	8360: "Pushtow, six barges at least one tanker or gas barge",
	8370: "Pushtow, seven barges at least one tanker or gas barge",
	8380: "Pushtow, eight barges at least one tanker or gas barge",
	8390: "Pushtow, nine or more barges at least one tanker or gas barge",
	8400: "Tug, single",
	8410: "Tug, one or more tows",
	8420: "Tug, assisting a vessel or convey",
	8430: "Pushboat, single",
	8440: "Passenger ship",
	8441: "Ferry",
	8442: "Red Cross ship",
	8443: "Cruise ship",
	8444: "Passenger ship without accommodation",
	8450: "Service vessel, police patrol",
	8460: "Service vessel",
	8470: "Object, towed, not otherwise specified",
	8480: "Fishing boat",
	8490: "Bunkership",
	8500: "Barge, tanker, chemical",
	8510: "Object, not otherwise specified",
}

// shipTypeText resolves an ERI code. Unknown codes are passed through
// annotated rather than failing the decode.
func shipTypeText(code int) string {
	if s, ok := inlandShipTypes[code]; ok {
		return s
	}
	return fmt.Sprintf("Unknown (%d)", code)
}
