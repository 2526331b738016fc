package dac001

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// FairwayClosed is FID 13, notification that a fairway is closed.
type FairwayClosed struct {
	Reason       string `json:"reason"`
	LocationFrom string `json:"location_from"`
	LocationTo   string `json:"location_to"`
	Radius       int    `json:"radius"`
	Units        int    `json:"units"` // 0=km, 1=nm, 2=m
	DayFrom      int    `json:"day_from"`
	MonthFrom    int    `json:"month_from"`
	HourFrom     int    `json:"hour_from"`
	MinuteFrom   int    `json:"minute_from"`
	DayTo        int    `json:"day_to"`
	MonthTo      int    `json:"month_to"`
	HourTo       int    `json:"hour_to"`
	MinuteTo     int    `json:"minute_to"`
}

func (*FairwayClosed) DAC() int     { return 1 }
func (*FairwayClosed) FID() int     { return 13 }
func (*FairwayClosed) Name() string { return "fairway_closed" }

func decodeFairwayClosed(c *bits.Cursor) (registry.Message, error) {
	m := &FairwayClosed{
		Reason:       c.Text("reason", 20),
		LocationFrom: c.Text("location_from", 20),
		LocationTo:   c.Text("location_to", 20),
		Radius:       int(c.Uint("radius", 10)),
		Units:        int(c.Uint("units", 2)),
		DayFrom:      int(c.Uint("day_from", 5)),
		MonthFrom:    int(c.Uint("month_from", 4)),
		HourFrom:     int(c.Uint("hour_from", 5)),
		MinuteFrom:   int(c.Uint("minute_from", 6)),
		DayTo:        int(c.Uint("day_to", 5)),
		MonthTo:      int(c.Uint("month_to", 4)),
		HourTo:       int(c.Uint("hour_to", 5)),
		MinuteTo:     int(c.Uint("minute_to", 6)),
	}
	return m, c.Err()
}

// TrafficSignal is FID 19, the status of a marine traffic signal at a
// waterway.
type TrafficSignal struct {
	LinkID      int      `json:"link_id"`
	SignalName  string   `json:"name"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Status      int      `json:"status"`
	Signal      int      `json:"signal"`
	UTCHourNext int      `json:"utc_hour_next"`
	UTCMinNext  int      `json:"utc_min_next"`
	NextSignal  int      `json:"next_signal"`
}

func (*TrafficSignal) DAC() int     { return 1 }
func (*TrafficSignal) FID() int     { return 19 }
func (*TrafficSignal) Name() string { return "marine_traffic_signal" }

func decodeTrafficSignal(c *bits.Cursor) (registry.Message, error) {
	m := &TrafficSignal{
		LinkID:      int(c.Uint("link_id", 10)),
		SignalName:  c.Text("name", 20),
		Longitude:   c.Lon("longitude"),
		Latitude:    c.Lat("latitude"),
		Status:      int(c.Uint("status", 2)),
		Signal:      int(c.Uint("signal", 5)),
		UTCHourNext: int(c.Uint("utc_hour_next", 5)),
		UTCMinNext:  int(c.Uint("utc_min_next", 6)),
		NextSignal:  int(c.Uint("next_signal", 5)),
	}
	return m, c.Err()
}
