package dac200

import (
	"strings"
	"testing"

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
	msg, err := r.Decode(200, fid, data, nbits)
	if err != nil {
		t.Fatalf("Decode(200, %d): %v", fid, err)
	}
	return msg
}

func sixbitText(s string, chars int) [][2]uint64 {
	var fields [][2]uint64
	for _, ch := range s {
		fields = append(fields, [2]uint64{uint64(ch) % 64, 6})
	}
	for i := len(s); i < chars; i++ {
		fields = append(fields, [2]uint64{0, 6})
	}
	return fields
}

func TestInlandStatic(t *testing.T) {
	fields := sixbitText("02325678", 8)
	fields = append(fields,
		[2]uint64{1100, 13}, // 110.0 m
		[2]uint64{114, 10},  // 11.4 m
		[2]uint64{8020, 14},
		[2]uint64{1, 3},
		[2]uint64{320, 11},
		[2]uint64{2, 2},
		[2]uint64{1, 1}, [2]uint64{1, 1}, [2]uint64{0, 1},
	)
	data, nbits := packBits(fields...)
	m := decode(t, 10, data, nbits).(*InlandStatic)

	if m.ENI != "02325678" {
		t.Errorf("ENI = %q, want %q", m.ENI, "02325678")
	}
	if m.LengthM != 110.0 || m.BeamM != 11.4 {
		t.Errorf("dimensions = %v x %v, want 110.0 x 11.4", m.LengthM, m.BeamM)
	}
	if m.ShipType != 8020 || m.ShipTypeText != "Motor tanker" {
		t.Errorf("ship type = %d %q", m.ShipType, m.ShipTypeText)
	}
	if m.Hazard != 1 || m.DraughtCm != 320 || m.Loaded != 2 {
		t.Errorf("got hazard=%d draught=%d loaded=%d", m.Hazard, m.DraughtCm, m.Loaded)
	}
	if !m.SpeedQuality || !m.CourseQuality || m.HeadingQuality {
		t.Errorf("quality flags = %v/%v/%v", m.SpeedQuality, m.CourseQuality, m.HeadingQuality)
	}
}

func TestInlandStaticUnknownShipType(t *testing.T) {
	fields := sixbitText("00000000", 8)
	fields = append(fields,
		[2]uint64{0, 13}, [2]uint64{0, 10},
		[2]uint64{9999, 14},
		[2]uint64{0, 3}, [2]uint64{0, 11}, [2]uint64{0, 2},
		[2]uint64{0, 1}, [2]uint64{0, 1}, [2]uint64{0, 1},
	)
	data, nbits := packBits(fields...)
	m := decode(t, 10, data, nbits).(*InlandStatic)
	if !strings.Contains(m.ShipTypeText, "9999") {
		t.Errorf("ShipTypeText = %q, want annotated unknown code", m.ShipTypeText)
	}
}

func TestETA(t *testing.T) {
	fields := sixbitText("NL", 2)
	fields = append(fields, sixbitText("RTM", 3)...)
	fields = append(fields, sixbitText("LOCK1", 5)...)
	fields = append(fields, sixbitText("T2", 5)...)
	fields = append(fields, sixbitText("FW1", 5)...)
	fields = append(fields, sixbitText("00042", 5)...)
	fields = append(fields,
		[2]uint64{6, 4}, [2]uint64{15, 5}, [2]uint64{14, 5}, [2]uint64{30, 6},
		[2]uint64{2, 3},
		[2]uint64{1850, 13},
		[2]uint64{228, 10},
		[2]uint64{350, 11},
		[2]uint64{1, 1},
	)
	data, nbits := packBits(fields...)
	m := decode(t, 21, data, nbits).(*ETA)

	if m.Country != "NL" || m.Location != "RTM" || m.Section != "LOCK1" {
		t.Errorf("location = %q/%q/%q", m.Country, m.Location, m.Section)
	}
	if m.ETAMonth != 6 || m.ETADay != 15 || m.ETAHour != 14 || m.ETAMinute != 30 {
		t.Errorf("eta = %d-%d %d:%d", m.ETAMonth, m.ETADay, m.ETAHour, m.ETAMinute)
	}
	if m.ConvoyCount != 2 || m.ConvoyLengthM != 185.0 || m.ConvoyBeamM != 22.8 {
		t.Errorf("convoy = %d x %v x %v", m.ConvoyCount, m.ConvoyLengthM, m.ConvoyBeamM)
	}
	if m.ConvoyDraughtCm != 350 || m.Direction != 1 {
		t.Errorf("got draught=%d direction=%d", m.ConvoyDraughtCm, m.Direction)
	}
}

func TestRTA(t *testing.T) {
	fields := sixbitText("DE", 2)
	fields = append(fields, sixbitText("DUI", 3)...)
	fields = append(fields, sixbitText("", 5)...)
	fields = append(fields, sixbitText("", 5)...)
	fields = append(fields, sixbitText("", 5)...)
	fields = append(fields, sixbitText("", 5)...)
	fields = append(fields,
		[2]uint64{7, 4}, [2]uint64{1, 5}, [2]uint64{9, 5}, [2]uint64{0, 6},
		[2]uint64{1, 2},
	)
	data, nbits := packBits(fields...)
	m := decode(t, 22, data, nbits).(*RTA)
	if m.Country != "DE" || m.Location != "DUI" {
		t.Errorf("location = %q/%q", m.Country, m.Location)
	}
	if m.RTAMonth != 7 || m.RTAHour != 9 || m.RTAStatus != 1 {
		t.Errorf("rta = %+v", m)
	}
}

func TestEMMA(t *testing.T) {
	fields := [][2]uint64{
		{26, 8}, {1, 4}, {10, 5},
		{26, 8}, {1, 4}, {12, 5},
		{6, 5}, {0, 6},
		{18, 5}, {0, 6},
	}
	fields = append(fields, sixbitText("RHINE", 5)...)
	fields = append(fields,
		[2]uint64{100, 10}, [2]uint64{200, 10},
		[2]uint64{1, 3},
		[2]uint64{uint64(1<<14) - 12, 14}, // -12 two's complement
	)
	data, nbits := packBits(fields...)
	m := decode(t, 23, data, nbits).(*EMMA)

	if m.StartYear != 2026 || m.EndYear != 2026 {
		t.Errorf("years = %d..%d, want 2026", m.StartYear, m.EndYear)
	}
	if m.StartDay != 10 || m.EndDay != 12 || m.StartHour != 6 || m.EndHour != 18 {
		t.Errorf("window = %+v", m)
	}
	if m.FairwaySection != "RHINE" || m.FairwayHectometreFrom != 100 || m.FairwayHectometreTo != 200 {
		t.Errorf("fairway = %q %d..%d", m.FairwaySection, m.FairwayHectometreFrom, m.FairwayHectometreTo)
	}
	if m.WarningType != 1 || m.WarningValue != -12 {
		t.Errorf("warning = %d/%d, want 1/-12", m.WarningType, m.WarningValue)
	}
}

func TestWaterLevels(t *testing.T) {
	fields := sixbitText("AT", 2)
	fields = append(fields,
		[2]uint64{321, 11},
		[2]uint64{uint64(1<<14) - 45, 14}, // 45 cm below reference
		[2]uint64{20, 5}, [2]uint64{11, 5}, [2]uint64{15, 6},
	)
	data, nbits := packBits(fields...)
	m := decode(t, 24, data, nbits).(*WaterLevels)

	if m.Country != "AT" || m.GaugeID != 321 {
		t.Errorf("gauge = %q/%d", m.Country, m.GaugeID)
	}
	if m.LevelCm != -45 {
		t.Errorf("LevelCm = %d, want -45", m.LevelCm)
	}
	if m.Day != 20 || m.Hour != 11 || m.Minute != 15 {
		t.Errorf("timestamp = %d/%d/%d", m.Day, m.Hour, m.Minute)
	}
}

func TestSignalStatus(t *testing.T) {
	fields := [][2]uint64{
		{6 * 60000, 25},
		{50 * 60000, 24},
		{2, 4},
		{90, 9},
		{1, 3},
		{0x2A, 30},
	}
	data, nbits := packBits(fields...)
	m := decode(t, 40, data, nbits).(*SignalStatus)

	if m.Longitude == nil || *m.Longitude != 6.0 {
		t.Errorf("Longitude = %v, want 6.0", m.Longitude)
	}
	if m.Latitude == nil || *m.Latitude != 50.0 {
		t.Errorf("Latitude = %v, want 50.0", m.Latitude)
	}
	if m.Form != 2 || m.Orientation != 90 || m.Direction != 1 || m.Status != 0x2A {
		t.Errorf("signal = %+v", m)
	}
}

func TestSignalStatusPositionUnavailable(t *testing.T) {
	fields := [][2]uint64{
		{181 * 60000, 25},
		{91 * 60000, 24},
		{0, 4}, {0, 9}, {0, 3}, {0, 30},
	}
	data, nbits := packBits(fields...)
	m := decode(t, 40, data, nbits).(*SignalStatus)
	if m.Longitude != nil || m.Latitude != nil {
		t.Errorf("position = %v/%v, want nil/nil", m.Longitude, m.Latitude)
	}
}

func TestPersonsInland(t *testing.T) {
	fields := [][2]uint64{
		{12, 8}, {250, 13}, {4, 8},
	}
	data, nbits := packBits(fields...)
	m := decode(t, 55, data, nbits).(*PersonsInland)
	if m.Crew != 12 || m.Passengers != 250 || m.Personnel != 4 {
		t.Errorf("persons = %d/%d/%d, want 12/250/4", m.Crew, m.Passengers, m.Personnel)
	}
}
