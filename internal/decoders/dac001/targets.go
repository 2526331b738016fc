package dac001

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// VTSTarget is one radar-detected target that is not itself
// transmitting AIS. Latitude precedes longitude in this layout.
type VTSTarget struct {
	TargetType int      `json:"type"`
	ID         string   `json:"id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	COG        int      `json:"cog"`
	Timestamp  int      `json:"timestamp"`
	SOGKts     int      `json:"sog_kts"`
}

// VTSTargets is FID 17, VTS generated/synthetic targets. Up to four
// 120-bit target records.
type VTSTargets struct {
	Targets []VTSTarget `json:"targets"`
}

func (*VTSTargets) DAC() int     { return 1 }
func (*VTSTargets) FID() int     { return 17 }
func (*VTSTargets) Name() string { return "vts_targets" }

const vtsTargetBits = 120

func decodeVTSTargets(c *bits.Cursor) (registry.Message, error) {
	m := &VTSTargets{Targets: []VTSTarget{}}
	for len(m.Targets) < 4 && c.Remaining() >= vtsTargetBits {
		t := VTSTarget{
			TargetType: int(c.Uint("target_type", 2)),
			ID:         c.Text("target_id", 7),
		}
		c.Skip(4) // spare
		t.Latitude = c.Lat("latitude")
		t.Longitude = c.Lon("longitude")
		t.COG = int(c.Uint("cog", 9))
		t.Timestamp = int(c.Uint("timestamp", 6))
		t.SOGKts = int(c.Uint("sog", 8))
		if err := c.Err(); err != nil {
			return nil, err
		}
		m.Targets = append(m.Targets, t)
	}
	return m, c.Err()
}
