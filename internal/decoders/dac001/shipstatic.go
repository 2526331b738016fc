package dac001

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// AirDraught is FID 15, extended ship static data: the height of the
// vessel's highest point.
type AirDraught struct {
	AirDraughtM float64 `json:"air_draught_m"`
}

func (*AirDraught) DAC() int     { return 1 }
func (*AirDraught) FID() int     { return 15 }
func (*AirDraught) Name() string { return "air_draught" }

func decodeAirDraught(c *bits.Cursor) (registry.Message, error) {
	m := &AirDraught{
		AirDraughtM: float64(c.Uint("air_draught", 11)) / 10,
	}
	return m, c.Err()
}

// Persons is FID 16, number of persons on board.
type Persons struct {
	Persons int `json:"persons"`
}

func (*Persons) DAC() int     { return 1 }
func (*Persons) FID() int     { return 16 }
func (*Persons) Name() string { return "persons_on_board" }

func decodePersons(c *bits.Cursor) (registry.Message, error) {
	m := &Persons{
		Persons: int(c.Uint("persons", 13)),
	}
	return m, c.Err()
}

// ExtendedStatic is FID 24, extended ship static and voyage related
// data, including the 26-item SOLAS equipment status vector.
type ExtendedStatic struct {
	LinkID          int     `json:"link_id"`
	AirDraughtM     float64 `json:"air_draught_m"`
	LastPort        string  `json:"last_port"`
	NextPort1       string  `json:"next_port_1"`
	NextPort2       string  `json:"next_port_2"`
	SolasStatus     []int   `json:"solas_status"`
	IceClass        int     `json:"ice_class"`
	ShaftPowerHP    int     `json:"shaft_power_hp"`
	VHFChannel      int     `json:"vhf_channel"`
	LloydsShipType  string  `json:"lloyds_ship_type"`
	GrossTonnage    int     `json:"gross_tonnage"`
	LadenBallast    int     `json:"laden_ballast"`
	HeavyOil        int     `json:"heavy_oil"`
	LightOil        int     `json:"light_oil"`
	Diesel          int     `json:"diesel"`
	BunkerOilTonnes int     `json:"bunker_oil_tonnes"`
	Persons         int     `json:"persons"`
}

func (*ExtendedStatic) DAC() int     { return 1 }
func (*ExtendedStatic) FID() int     { return 24 }
func (*ExtendedStatic) Name() string { return "extended_static" }

func decodeExtendedStatic(c *bits.Cursor) (registry.Message, error) {
	m := &ExtendedStatic{
		LinkID:      int(c.Uint("link_id", 10)),
		AirDraughtM: float64(c.Uint("air_draught", 13)) / 10,
		LastPort:    c.Text("last_port", 5),
		NextPort1:   c.Text("next_port_1", 5),
		NextPort2:   c.Text("next_port_2", 5),
	}
	m.SolasStatus = make([]int, 26)
	for i := range m.SolasStatus {
		m.SolasStatus[i] = int(c.Uint("solas_status", 2))
	}
	m.IceClass = int(c.Uint("ice_class", 4))
	m.ShaftPowerHP = int(c.Uint("shaft_power", 18))
	m.VHFChannel = int(c.Uint("vhf_channel", 12))
	m.LloydsShipType = c.Text("lloyds_ship_type", 7)
	m.GrossTonnage = int(c.Uint("gross_tonnage", 18))
	m.LadenBallast = int(c.Uint("laden_ballast", 2))
	m.HeavyOil = int(c.Uint("heavy_oil", 2))
	m.LightOil = int(c.Uint("light_oil", 2))
	m.Diesel = int(c.Uint("diesel", 2))
	m.BunkerOilTonnes = int(c.Uint("bunker_oil", 14))
	m.Persons = int(c.Uint("persons", 13))
	return m, c.Err()
}
