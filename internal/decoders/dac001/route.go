package dac001

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// Waypoint is one leg of a broadcast route, in the high-resolution
// 28/27-bit position encoding.
type Waypoint struct {
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
}

// Route is FID 27, a recommended or mandatory route with up to 16
// waypoints.
type Route struct {
	LinkID      int        `json:"link_id"`
	SenderType  int        `json:"sender_type"`
	RouteType   int        `json:"route_type"`
	Month       int        `json:"month"`
	Day         int        `json:"day"`
	Hour        int        `json:"hour"`
	Minute      int        `json:"minute"`
	DurationMin int        `json:"duration_min"`
	Waypoints   []Waypoint `json:"waypoints"`
}

func (*Route) DAC() int     { return 1 }
func (*Route) FID() int     { return 27 }
func (*Route) Name() string { return "route_info" }

const waypointBits = 55 // 28-bit lon + 27-bit lat

func decodeRoute(c *bits.Cursor) (registry.Message, error) {
	m := &Route{
		LinkID:      int(c.Uint("link_id", 10)),
		SenderType:  int(c.Uint("sender_type", 3)),
		RouteType:   int(c.Uint("route_type", 5)),
		Month:       int(c.Uint("month", 4)),
		Day:         int(c.Uint("day", 5)),
		Hour:        int(c.Uint("hour", 5)),
		Minute:      int(c.Uint("minute", 6)),
		DurationMin: int(c.Uint("duration", 18)),
		Waypoints:   []Waypoint{},
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	c.Skip(5) // spare before the waypoint list
	for len(m.Waypoints) < 16 && c.Remaining() >= waypointBits {
		wp := Waypoint{
			Longitude: c.Lon28("waypoint_longitude"),
			Latitude:  c.Lat28("waypoint_latitude"),
		}
		if err := c.Err(); err != nil {
			return nil, err
		}
		m.Waypoints = append(m.Waypoints, wp)
	}
	return m, c.Err()
}

// TextDescription is FID 29, free-form text tied to a link ID. The text
// region runs to the end of the payload.
type TextDescription struct {
	LinkID int    `json:"link_id"`
	Text   string `json:"text"`
}

func (*TextDescription) DAC() int     { return 1 }
func (*TextDescription) FID() int     { return 29 }
func (*TextDescription) Name() string { return "text_description" }

func decodeText(c *bits.Cursor) (registry.Message, error) {
	m := &TextDescription{
		LinkID: int(c.Uint("link_id", 10)),
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	m.Text = c.Text("text", c.Remaining()/6)
	return m, c.Err()
}
