package dac001

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/decoders/area"
	"ais_watch/internal/registry"
)

// AreaNotice is FID 22, a broadcast notice (danger, caution, routing)
// covering one or more geometric sub-areas.
type AreaNotice struct {
	LinkID      int            `json:"link_id"`
	NoticeType  int            `json:"notice_type"`
	Month       int            `json:"month"`
	Day         int            `json:"day"`
	Hour        int            `json:"hour"`
	Minute      int            `json:"minute"`
	DurationMin int            `json:"duration_min"`
	SubAreas    []area.SubArea `json:"sub_areas"`
}

func (*AreaNotice) DAC() int     { return 1 }
func (*AreaNotice) FID() int     { return 22 }
func (*AreaNotice) Name() string { return "area_notice" }

func decodeAreaNotice(c *bits.Cursor) (registry.Message, error) {
	m := &AreaNotice{
		LinkID:      int(c.Uint("link_id", 10)),
		NoticeType:  int(c.Uint("notice_type", 7)),
		Month:       int(c.Uint("month", 4)),
		Day:         int(c.Uint("day", 5)),
		Hour:        int(c.Uint("hour", 5)),
		Minute:      int(c.Uint("minute", 6)),
		DurationMin: int(c.Uint("duration", 18)),
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	subs, err := area.DecodeList(c, area.RecordBitsIMO)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []area.SubArea{}
	}
	m.SubAreas = subs
	return m, nil
}
