package dac001

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// WeatherObsAIS is FID 21 format 0, a weather observation report from
// ship in the AIS-native layout.
type WeatherObsAIS struct {
	ObsType          int      `json:"type"` // always 0
	Location         string   `json:"location"`
	Longitude        *float64 `json:"longitude"`
	Latitude         *float64 `json:"latitude"`
	Day              int      `json:"day"`
	Hour             int      `json:"hour"`
	Minute           int      `json:"minute"`
	WxCode           int      `json:"wx_code"`
	HorzVisibilityNM *float64 `json:"horz_visibility_nm"`
	HumidityPct      *float64 `json:"humidity_pct"`
	WindSpeedKts     *float64 `json:"wind_speed_kts"`
	WindDir          *float64 `json:"wind_dir"`
	AirPressureHPa   int      `json:"air_pressure_hpa"`
	AirPressureTrend int      `json:"air_pressure_trend"`
	AirTempC         *float64 `json:"air_temp_c"`
	WaterTempC       *float64 `json:"water_temp_c"`
	WavePeriodS      *float64 `json:"wave_period_s"`
	WaveHeightM      *float64 `json:"wave_height_m"`
	WaveDir          *float64 `json:"wave_dir"`
	SwellHeightM     *float64 `json:"swell_height_m"`
	SwellDir         *float64 `json:"swell_dir"`
	SwellPeriodS     *float64 `json:"swell_period_s"`
}

func (*WeatherObsAIS) DAC() int     { return 1 }
func (*WeatherObsAIS) FID() int     { return 21 }
func (*WeatherObsAIS) Name() string { return "weather_observation" }

// WeatherObsWMO is FID 21 format 1, the WMO-coded observation layout.
type WeatherObsWMO struct {
	ObsType           int     `json:"type"` // always 1
	Longitude         float64 `json:"longitude"`
	Latitude          float64 `json:"latitude"`
	Month             int     `json:"month"`
	Day               int     `json:"day"`
	Hour              int     `json:"hour"`
	Minute            int     `json:"minute"`
	COG               int     `json:"cog"`
	SOGKts            float64 `json:"sog_kts"`
	Heading           int     `json:"heading"`
	PressureHPa       float64 `json:"pressure_hpa"`
	RelPressureHPa    float64 `json:"rel_pressure_hpa"`
	PressureTrend     int     `json:"pressure_trend"`
	WindDir           int     `json:"wind_dir"`
	WindSpeedMS       float64 `json:"wind_speed_ms"`
	WindDirRel        int     `json:"wind_dir_rel"`
	WindSpeedRelMS    float64 `json:"wind_speed_rel_ms"`
	WindGustSpeedMS   float64 `json:"wind_gust_speed_ms"`
	WindGustDir       int     `json:"wind_gust_dir"`
	AirTempRaw        int     `json:"air_temp_raw"` // Kelvin offset coding
	HumidityPct       int     `json:"humidity_pct"`
	WaterTempRaw      int     `json:"water_temp_raw"`
	WxCurrent         int     `json:"wx_current"`
	WxPast1           int     `json:"wx_past_1"`
	WxPast2           int     `json:"wx_past_2"`
	CloudTotalPct     int     `json:"cloud_total_pct"`
	CloudLow          int     `json:"cloud_low"`
	CloudLowType      int     `json:"cloud_low_type"`
	CloudMiddleType   int     `json:"cloud_middle_type"`
	CloudHighType     int     `json:"cloud_high_type"`
	WavePeriodS       int     `json:"wave_period_s"`
	WaveHeightM       float64 `json:"wave_height_m"`
	SwellDir          int     `json:"swell_dir"`
	SwellPeriodS      int     `json:"swell_period_s"`
	SwellHeightM      float64 `json:"swell_height_m"`
	IceThicknessM     float64 `json:"ice_thickness_m"`
	IceAccretion      int     `json:"ice_accretion"`
	IceAccretionCause int     `json:"ice_accretion_cause"`
}

func (*WeatherObsWMO) DAC() int     { return 1 }
func (*WeatherObsWMO) FID() int     { return 21 }
func (*WeatherObsWMO) Name() string { return "weather_observation" }

// The leading bit selects between the AIS-native and WMO layouts.
func decodeWeatherObs(c *bits.Cursor) (registry.Message, error) {
	if c.Bool("obs_format") {
		return decodeWeatherObsWMO(c)
	}
	return decodeWeatherObsAIS(c)
}

func decodeWeatherObsAIS(c *bits.Cursor) (registry.Message, error) {
	m := &WeatherObsAIS{
		ObsType:          0,
		Location:         c.Text("location", 20),
		Longitude:        c.Lon("longitude"),
		Latitude:         c.Lat("latitude"),
		Day:              int(c.Uint("day", 5)),
		Hour:             int(c.Uint("hour", 5)),
		Minute:           int(c.Uint("minute", 6)),
		WxCode:           int(c.Uint("wx_code", 4)),
		HorzVisibilityNM: c.UFloat("horz_visibility", 8, 10, 127),
		HumidityPct:      c.UFloat("humidity", 7, 1, 101),
		WindSpeedKts:     c.UFloat("wind_speed", 7, 1, 127),
		WindDir:          c.UFloat("wind_dir", 9, 1, 360),
		AirPressureHPa:   int(c.Uint("air_pressure", 9)),
		AirPressureTrend: int(c.Uint("air_pressure_trend", 4)),
		AirTempC:         c.SFloat("air_temp", 11, 10, -1024),
		WaterTempC:       c.UFloatOff("water_temp", 10, 10, -10, 1023),
		WavePeriodS:      c.UFloat("wave_period", 6, 1, 63),
		WaveHeightM:      c.UFloat("wave_height", 8, 10, 255),
		WaveDir:          c.UFloat("wave_dir", 9, 1, 360),
		SwellHeightM:     c.UFloat("swell_height", 8, 10, 255),
		SwellDir:         c.UFloat("swell_dir", 9, 1, 360),
		SwellPeriodS:     c.UFloat("swell_period", 6, 1, 63),
	}
	return m, c.Err()
}

func decodeWeatherObsWMO(c *bits.Cursor) (registry.Message, error) {
	m := &WeatherObsWMO{ObsType: 1}
	m.Longitude = float64(c.Uint("longitude", 16))/100 - 180
	m.Latitude = float64(c.Uint("latitude", 15))/100 - 90
	m.Month = int(c.Uint("month", 4))
	m.Day = int(c.Uint("day", 6))
	m.Hour = int(c.Uint("hour", 5))
	m.Minute = int(c.Uint("minute", 3)) * 10
	m.COG = int(c.Uint("cog", 7)) * 5
	m.SOGKts = float64(c.Uint("sog", 5)) * 0.5
	m.Heading = int(c.Uint("heading", 7)) * 5
	m.PressureHPa = float64(c.Uint("pressure", 11))/10 + 900
	m.RelPressureHPa = float64(c.Uint("rel_pressure", 10))/10 - 50
	m.PressureTrend = int(c.Uint("pressure_trend", 4))
	m.WindDir = int(c.Uint("wind_dir", 7)) * 5
	m.WindSpeedMS = float64(c.Uint("wind_speed", 8)) * 0.5
	m.WindDirRel = int(c.Uint("wind_dir_rel", 7)) * 5
	m.WindSpeedRelMS = float64(c.Uint("wind_speed_rel", 8)) * 0.5
	m.WindGustSpeedMS = float64(c.Uint("wind_gust_speed", 8)) * 0.5
	m.WindGustDir = int(c.Uint("wind_gust_dir", 7)) * 5
	m.AirTempRaw = int(c.Uint("air_temp", 10))
	m.HumidityPct = int(c.Uint("humidity", 7))
	m.WaterTempRaw = int(c.Uint("water_temp", 9))
	c.Skip(6) // spare
	m.WxCurrent = int(c.Uint("wx_current", 9))
	m.WxPast1 = int(c.Uint("wx_past_1", 5))
	m.WxPast2 = int(c.Uint("wx_past_2", 5))
	m.CloudTotalPct = int(c.Uint("cloud_total", 4)) * 10
	m.CloudLow = int(c.Uint("cloud_low", 4))
	m.CloudLowType = int(c.Uint("cloud_low_type", 6))
	m.CloudMiddleType = int(c.Uint("cloud_middle_type", 6))
	m.CloudHighType = int(c.Uint("cloud_high_type", 6))
	c.Skip(7) // spare
	m.WavePeriodS = int(c.Uint("wave_period", 5))
	m.WaveHeightM = float64(c.Uint("wave_height", 6)) * 0.5
	m.SwellDir = int(c.Uint("swell_dir", 6)) * 10
	m.SwellPeriodS = int(c.Uint("swell_period", 5))
	m.SwellHeightM = float64(c.Uint("swell_height", 6)) * 0.5
	c.Skip(17) // spare
	m.IceThicknessM = float64(c.Uint("ice_thickness", 7)) / 100
	m.IceAccretion = int(c.Uint("ice_accretion", 3))
	m.IceAccretionCause = int(c.Uint("ice_accretion_cause", 3))
	return m, c.Err()
}
