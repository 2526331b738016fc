package dac367

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/decoders/area"
	"ais_watch/internal/registry"
)

// AreaNoticeUS is FID 22, the US version of the Area Notice. Same idea
// as DAC 001 FID 22 with a version field, US notice types and 90-bit
// sub-area records.
type AreaNoticeUS struct {
	Version     int            `json:"version"`
	LinkID      int            `json:"link_id"`
	NoticeType  int            `json:"notice_type"`
	Month       int            `json:"month"`
	Day         int            `json:"day"`
	Hour        int            `json:"hour"`
	Minute      int            `json:"minute"`
	DurationMin int            `json:"duration_min"`
	SubAreas    []area.SubArea `json:"sub_areas"`
}

func (*AreaNoticeUS) DAC() int     { return 367 }
func (*AreaNoticeUS) FID() int     { return 22 }
func (*AreaNoticeUS) Name() string { return "area_notice_us" }

func decodeAreaNoticeUS(c *bits.Cursor) (registry.Message, error) {
	m := &AreaNoticeUS{
		Version:     int(c.Uint("version", 6)),
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
	subs, err := area.DecodeList(c, area.RecordBitsUS)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []area.SubArea{}
	}
	m.SubAreas = subs
	return m, nil
}
