package dac367

import (
	"errors"
	"testing"

	"ais_watch/internal/decoders/area"
	"ais_watch/internal/registry"
)

// packBits builds a payload from (value, width) pairs, MSB first.
func packBits(fields ...[2]uint64) ([]byte, int) {
	var raw []bool
	for _, f := range fields {
		v, w := f[0], int(f[1])
		for i := w - 1; i >= 0; i-- {
			raw = append(raw, (v>>uint(i))&1 == 1)
		}
	}
	out := make([]byte, (len(raw)+7)/8)
	for i, b := range raw {
		if b {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out, len(raw)
}

func decode(t *testing.T, fid int, data []byte, nbits int) registry.Message {
	t.Helper()
	r := registry.New(Entries()...)
	msg, err := r.Decode(367, fid, data, nbits)
	if err != nil {
		t.Fatalf("Decode(367, %d): %v", fid, err)
	}
	return msg
}

func TestAreaNoticeUS(t *testing.T) {
	fields := [][2]uint64{
		{1, 6},  // version
		{33, 10},
		{5, 7},
		{3, 4}, {14, 5}, {16, 6}, {0, 6},
		{360, 18},
		// one circle record padded to the 90-bit US size
		{area.ShapeCircle, 3}, {0, 2},
		{74 * 60000, 25}, {40 * 60000, 24}, {4, 3}, {1852, 12},
		{0, 21},
	}
	data, nbits := packBits(fields...)
	m := decode(t, 22, data, nbits).(*AreaNoticeUS)

	if m.Version != 1 || m.LinkID != 33 || m.NoticeType != 5 || m.DurationMin != 360 {
		t.Errorf("header = %+v", m)
	}
	if len(m.SubAreas) != 1 {
		t.Fatalf("got %d sub-areas, want 1", len(m.SubAreas))
	}
	circ := m.SubAreas[0].(area.Circle)
	if circ.RadiusM != 1852 {
		t.Errorf("RadiusM = %d, want 1852", circ.RadiusM)
	}
	if circ.Longitude == nil || *circ.Longitude != 74.0 {
		t.Errorf("Longitude = %v, want 74.0", circ.Longitude)
	}
}

func TestAreaNoticeUSNoSubAreas(t *testing.T) {
	fields := [][2]uint64{
		{1, 6}, {1, 10}, {0, 7},
		{1, 4}, {1, 5}, {0, 6}, {0, 6}, {60, 18},
	}
	data, nbits := packBits(fields...)
	m := decode(t, 22, data, nbits).(*AreaNoticeUS)
	if m.SubAreas == nil || len(m.SubAreas) != 0 {
		t.Errorf("SubAreas = %v, want empty non-nil list", m.SubAreas)
	}
}

func TestEnvironmentalLocationAndWind(t *testing.T) {
	fields := [][2]uint64{
		// location report
		{reportLocation, 4},
		{2, 6},
		{10 * 600000, 28}, {45 * 600000, 27},
		{7, 4},
		{uint64(1<<12) - 25, 12}, // -2.5 m altitude
		{3, 4},
		{2, 3},
		// wind report
		{reportWind, 4},
		{12, 5}, {8, 5}, {30, 6}, {19, 7},
		{18, 7}, {25, 7}, {225, 9}, {360, 9},
		{1, 3},
		{127, 7}, {127, 7}, {360, 9},
		{13, 5}, {6, 5}, {0, 6},
		{120, 8},
	}
	data, nbits := packBits(fields...)
	m := decode(t, 33, data, nbits).(*Environmental)

	if len(m.Reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(m.Reports))
	}
	loc, ok := m.Reports[0].(*LocationReport)
	if !ok {
		t.Fatalf("report 0 type %T, want *LocationReport", m.Reports[0])
	}
	if loc.Version != 2 || loc.TypeName != "Location" {
		t.Errorf("location = %+v", loc)
	}
	if loc.Longitude == nil || *loc.Longitude != 10.0 {
		t.Errorf("Longitude = %v, want 10.0", loc.Longitude)
	}
	if loc.Latitude == nil || *loc.Latitude != 45.0 {
		t.Errorf("Latitude = %v, want 45.0", loc.Latitude)
	}
	if loc.AltitudeM != -2.5 {
		t.Errorf("AltitudeM = %v, want -2.5", loc.AltitudeM)
	}

	wind, ok := m.Reports[1].(*WindReport)
	if !ok {
		t.Fatalf("report 1 type %T, want *WindReport", m.Reports[1])
	}
	if wind.SiteID != 19 || wind.TypeName != "Wind" {
		t.Errorf("wind header = %+v", wind.reportHeader)
	}
	if wind.WindSpeedKts == nil || *wind.WindSpeedKts != 18 {
		t.Errorf("WindSpeedKts = %v, want 18", wind.WindSpeedKts)
	}
	if wind.WindDir == nil || *wind.WindDir != 225 {
		t.Errorf("WindDir = %v, want 225", wind.WindDir)
	}
	if wind.WindGustDir != nil {
		t.Errorf("WindGustDir = %v, want nil (360 sentinel)", *wind.WindGustDir)
	}
	if wind.ForecastWindSpeedKts != nil {
		t.Errorf("ForecastWindSpeedKts = %v, want nil (127 sentinel)", *wind.ForecastWindSpeedKts)
	}
	if wind.DurationMin != 120 {
		t.Errorf("DurationMin = %d, want 120", wind.DurationMin)
	}
}

func TestEnvironmentalWaterLevel(t *testing.T) {
	fields := [][2]uint64{
		{reportWaterLevel, 4},
		{5, 5}, {10, 5}, {20, 6}, {44, 7},
		{1, 3},
		{uint64(1<<16) - 150, 16}, // -1.50 m
		{2, 2}, {3, 5}, {1, 3},
		{0, 3}, {0, 5}, {0, 5}, {0, 6}, {0, 8},
	}
	data, nbits := packBits(fields...)
	m := decode(t, 33, data, nbits).(*Environmental)
	if len(m.Reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(m.Reports))
	}
	wl := m.Reports[0].(*WaterLevelReport)
	if wl.SiteID != 44 || wl.LevelM != -1.5 || wl.Trend != 2 {
		t.Errorf("water level = %+v", wl)
	}
}

func TestEnvironmentalWeatherPressure(t *testing.T) {
	fields := [][2]uint64{
		{reportWeather, 4},
		{1, 5}, {2, 5}, {3, 6}, {4, 7},
		{152, 11}, // 15.2 C
		{1, 3}, {0, 3},
		{100, 8},
		{uint64(1<<10) - 20, 10}, // -2.0 C dew point
		{1, 3},
		{213, 9}, // 213 + 800 = 1013 hPa
		{1, 2}, {0, 3},
		{350, 9},
	}
	data, nbits := packBits(fields...)
	m := decode(t, 33, data, nbits).(*Environmental)
	w := m.Reports[0].(*WeatherReport)
	if w.AirTempC != 15.2 || w.DewPointC != -2.0 {
		t.Errorf("temps = %v/%v, want 15.2/-2.0", w.AirTempC, w.DewPointC)
	}
	if w.AirPressureHPa != 1013 {
		t.Errorf("AirPressureHPa = %d, want 1013", w.AirPressureHPa)
	}
	if w.SalinityPpt != 35.0 {
		t.Errorf("SalinityPpt = %v, want 35.0", w.SalinityPpt)
	}
}

func TestEnvironmentalUnknownReportType(t *testing.T) {
	// Type 12 (Ice) has a name but no layout; the whole message fails.
	fields := [][2]uint64{
		{reportAirPressure, 4},
		{1, 5}, {2, 5}, {3, 6}, {4, 7},
		{213, 9}, {1, 2}, {0, 3},
		{220, 9}, {5, 5}, {6, 5}, {0, 6}, {60, 8},
		{12, 4},
		{0, 60},
	}
	data, nbits := packBits(fields...)
	r := registry.New(Entries()...)
	_, err := r.Decode(367, 33, data, nbits)
	var de *registry.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not *DecodeError", err)
	}
	if de.Kind != registry.UnknownDiscriminator || de.Discriminator != 12 {
		t.Errorf("DecodeError = %+v, want unknown discriminator 12", de)
	}
	if de.RecordIndex != 1 {
		t.Errorf("RecordIndex = %d, want 1", de.RecordIndex)
	}
	if de.DAC != 367 || de.FID != 33 {
		t.Errorf("dac/fid = %d/%d, want 367/33", de.DAC, de.FID)
	}
}

func TestEnvironmentalShortTailIgnored(t *testing.T) {
	// A trailing span below the minimum report size is padding.
	fields := [][2]uint64{
		{reportCurrent2D, 4},
		{1, 5}, {2, 5}, {3, 6}, {4, 7},
		{45, 8}, {180, 9}, {5, 9},
		{0, 20}, // 20 spare bits, less than one report
	}
	data, nbits := packBits(fields...)
	m := decode(t, 33, data, nbits).(*Environmental)
	if len(m.Reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(m.Reports))
	}
	cur := m.Reports[0].(*Current2DReport)
	if cur.CurSpeedKts != 4.5 || cur.CurDir != 180 || cur.CurDepthM != 5 {
		t.Errorf("current = %+v", cur)
	}
}
