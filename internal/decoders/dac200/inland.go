package dac200

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// InlandStatic is FID 10, inland ship static and voyage related data.
// ENI is the European Number of Identification (vessel registration).
type InlandStatic struct {
	ENI            string  `json:"eni"`
	LengthM        float64 `json:"length_m"`
	BeamM          float64 `json:"beam_m"`
	ShipType       int     `json:"ship_type"`
	ShipTypeText   string  `json:"ship_type_text"`
	Hazard         int     `json:"hazard"` // blue cones/lights
	DraughtCm      int     `json:"draught_cm"`
	Loaded         int     `json:"loaded"` // 0=N/A, 1=unloaded, 2=loaded
	SpeedQuality   bool    `json:"speed_quality"`
	CourseQuality  bool    `json:"course_quality"`
	HeadingQuality bool    `json:"heading_quality"`
}

func (*InlandStatic) DAC() int     { return 200 }
func (*InlandStatic) FID() int     { return 10 }
func (*InlandStatic) Name() string { return "inland_static" }

// Reference decoders disagree on the FID 10 offsets (some overlap
// ship_type with length and place draught at bit 91). This follows the
// sequential field order of ECE TRANS/SC.3/176 as read by GPSD.
func decodeInlandStatic(c *bits.Cursor) (registry.Message, error) {
	m := &InlandStatic{
		ENI:     c.Text("eni", 8),
		LengthM: float64(c.Uint("length", 13)) / 10,
		BeamM:   float64(c.Uint("beam", 10)) / 10,
	}
	m.ShipType = int(c.Uint("ship_type", 14))
	m.ShipTypeText = shipTypeText(m.ShipType)
	m.Hazard = int(c.Uint("hazard", 3))
	m.DraughtCm = int(c.Uint("draught", 11))
	m.Loaded = int(c.Uint("loaded", 2))
	m.SpeedQuality = c.Bool("speed_quality")
	m.CourseQuality = c.Bool("course_quality")
	m.HeadingQuality = c.Bool("heading_quality")
	return m, c.Err()
}

// ETA is FID 21, an estimated-time-of-arrival request sent by a vessel
// approaching a lock, bridge or terminal.
type ETA struct {
	Country           string  `json:"country"`  // UN country code
	Location          string  `json:"location"` // UN location code
	Section           string  `json:"section"`
	Terminal          string  `json:"terminal"`
	FairwaySection    string  `json:"fairway_section"`
	FairwayHectometre string  `json:"fairway_hectometre"`
	ETAMonth          int     `json:"eta_month"`
	ETADay            int     `json:"eta_day"`
	ETAHour           int     `json:"eta_hour"`
	ETAMinute         int     `json:"eta_minute"`
	ConvoyCount       int     `json:"convoy_count"`
	ConvoyLengthM     float64 `json:"convoy_length_m"`
	ConvoyBeamM       float64 `json:"convoy_beam_m"`
	ConvoyDraughtCm   int     `json:"convoy_draught_cm"`
	Direction         int     `json:"direction"` // 0=downstream, 1=upstream
}

func (*ETA) DAC() int     { return 200 }
func (*ETA) FID() int     { return 21 }
func (*ETA) Name() string { return "eta_at_lock" }

func decodeETA(c *bits.Cursor) (registry.Message, error) {
	m := &ETA{
		Country:           c.Text("country", 2),
		Location:          c.Text("location", 3),
		Section:           c.Text("section", 5),
		Terminal:          c.Text("terminal", 5),
		FairwaySection:    c.Text("fairway_section", 5),
		FairwayHectometre: c.Text("fairway_hectometre", 5),
		ETAMonth:          int(c.Uint("eta_month", 4)),
		ETADay:            int(c.Uint("eta_day", 5)),
		ETAHour:           int(c.Uint("eta_hour", 5)),
		ETAMinute:         int(c.Uint("eta_minute", 6)),
		ConvoyCount:       int(c.Uint("convoy_count", 3)),
	}
	m.ConvoyLengthM = float64(c.Uint("convoy_length", 13)) / 10
	m.ConvoyBeamM = float64(c.Uint("convoy_beam", 10)) / 10
	m.ConvoyDraughtCm = int(c.Uint("convoy_draught", 11))
	m.Direction = int(c.Uint("direction", 1))
	return m, c.Err()
}

// RTA is FID 22, the recommended-time-of-arrival answer from the
// infrastructure operator.
type RTA struct {
	Country           string `json:"country"`
	Location          string `json:"location"`
	Section           string `json:"section"`
	Terminal          string `json:"terminal"`
	FairwaySection    string `json:"fairway_section"`
	FairwayHectometre string `json:"fairway_hectometre"`
	RTAMonth          int    `json:"rta_month"`
	RTADay            int    `json:"rta_day"`
	RTAHour           int    `json:"rta_hour"`
	RTAMinute         int    `json:"rta_minute"`
	RTAStatus         int    `json:"rta_status"` // 0=confirmed, 1=proposed
}

func (*RTA) DAC() int     { return 200 }
func (*RTA) FID() int     { return 22 }
func (*RTA) Name() string { return "rta_at_lock" }

func decodeRTA(c *bits.Cursor) (registry.Message, error) {
	m := &RTA{
		Country:           c.Text("country", 2),
		Location:          c.Text("location", 3),
		Section:           c.Text("section", 5),
		Terminal:          c.Text("terminal", 5),
		FairwaySection:    c.Text("fairway_section", 5),
		FairwayHectometre: c.Text("fairway_hectometre", 5),
		RTAMonth:          int(c.Uint("rta_month", 4)),
		RTADay:            int(c.Uint("rta_day", 5)),
		RTAHour:           int(c.Uint("rta_hour", 5)),
		RTAMinute:         int(c.Uint("rta_minute", 6)),
		RTAStatus:         int(c.Uint("rta_status", 2)),
	}
	return m, c.Err()
}

// EMMA is FID 23, a European Multimodal Meteorological warning for
// inland navigation.
type EMMA struct {
	StartYear             int    `json:"start_year"`
	StartMonth            int    `json:"start_month"`
	StartDay              int    `json:"start_day"`
	EndYear               int    `json:"end_year"`
	EndMonth              int    `json:"end_month"`
	EndDay                int    `json:"end_day"`
	StartHour             int    `json:"start_hour"`
	StartMinute           int    `json:"start_minute"`
	EndHour               int    `json:"end_hour"`
	EndMinute             int    `json:"end_minute"`
	FairwaySection        string `json:"fairway_section"`
	FairwayHectometreFrom int    `json:"fairway_hectometre_from"`
	FairwayHectometreTo   int    `json:"fairway_hectometre_to"`
	WarningType           int    `json:"warning_type"`
	WarningValue          int    `json:"warning_value"`
}

func (*EMMA) DAC() int     { return 200 }
func (*EMMA) FID() int     { return 23 }
func (*EMMA) Name() string { return "emma_warning" }

func decodeEMMA(c *bits.Cursor) (registry.Message, error) {
	m := &EMMA{
		StartYear:   int(c.Uint("start_year", 8)) + 2000,
		StartMonth:  int(c.Uint("start_month", 4)),
		StartDay:    int(c.Uint("start_day", 5)),
		EndYear:     int(c.Uint("end_year", 8)) + 2000,
		EndMonth:    int(c.Uint("end_month", 4)),
		EndDay:      int(c.Uint("end_day", 5)),
		StartHour:   int(c.Uint("start_hour", 5)),
		StartMinute: int(c.Uint("start_minute", 6)),
		EndHour:     int(c.Uint("end_hour", 5)),
		EndMinute:   int(c.Uint("end_minute", 6)),
	}
	m.FairwaySection = c.Text("fairway_section", 5)
	m.FairwayHectometreFrom = int(c.Uint("fairway_hectometre_from", 10))
	m.FairwayHectometreTo = int(c.Uint("fairway_hectometre_to", 10))
	m.WarningType = int(c.Uint("warning_type", 3))
	m.WarningValue = int(c.Int("warning_value", 14))
	return m, c.Err()
}

// WaterLevels is FID 24, the current water level at a gauge station.
type WaterLevels struct {
	Country string `json:"country"`
	GaugeID int    `json:"gauge_id"`
	LevelCm int    `json:"level_cm"`
	Day     int    `json:"day"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
}

func (*WaterLevels) DAC() int     { return 200 }
func (*WaterLevels) FID() int     { return 24 }
func (*WaterLevels) Name() string { return "water_levels" }

func decodeWaterLevels(c *bits.Cursor) (registry.Message, error) {
	m := &WaterLevels{
		Country: c.Text("country", 2),
		GaugeID: int(c.Uint("gauge_id", 11)),
		LevelCm: int(c.Int("level", 14)),
		Day:     int(c.Uint("day", 5)),
		Hour:    int(c.Uint("hour", 5)),
		Minute:  int(c.Uint("minute", 6)),
	}
	return m, c.Err()
}

// SignalStatus is FID 40, the state of an inland waterway signal
// (locks, bridges).
type SignalStatus struct {
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Form        int      `json:"form"`
	Orientation int      `json:"orientation"`
	Direction   int      `json:"direction"`
	Status      int      `json:"status"` // light status bitmask
}

func (*SignalStatus) DAC() int     { return 200 }
func (*SignalStatus) FID() int     { return 40 }
func (*SignalStatus) Name() string { return "signal_status" }

func decodeSignalStatus(c *bits.Cursor) (registry.Message, error) {
	m := &SignalStatus{
		Longitude:   c.Lon("longitude"),
		Latitude:    c.Lat("latitude"),
		Form:        int(c.Uint("form", 4)),
		Orientation: int(c.Uint("orientation", 9)),
		Direction:   int(c.Uint("direction", 3)),
		Status:      int(c.Uint("status", 30)),
	}
	return m, c.Err()
}

// PersonsInland is FID 55, the inland variant of the persons-on-board
// report, split by role.
type PersonsInland struct {
	Crew       int `json:"crew"`
	Passengers int `json:"passengers"`
	Personnel  int `json:"personnel"`
}

func (*PersonsInland) DAC() int     { return 200 }
func (*PersonsInland) FID() int     { return 55 }
func (*PersonsInland) Name() string { return "persons_on_board" }

func decodePersonsInland(c *bits.Cursor) (registry.Message, error) {
	m := &PersonsInland{
		Crew:       int(c.Uint("crew", 8)),
		Passengers: int(c.Uint("passengers", 13)),
		Personnel:  int(c.Uint("personnel", 8)),
	}
	return m, c.Err()
}
