package dac001

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// MetHydro236 is FID 11, meteorological and hydrological data per IMO
// Circ 236. Deprecated in favour of FID 31 but still on the air.
// Unlike every other position-bearing layout, latitude comes first.
type MetHydro236 struct {
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Day              int      `json:"day"`
	Hour             int      `json:"hour"`
	Minute           int      `json:"minute"`
	WindAveKts       *float64 `json:"wind_ave_kts"`
	WindGustKts      *float64 `json:"wind_gust_kts"`
	WindDir          *float64 `json:"wind_dir"`
	WindGustDir      *float64 `json:"wind_gust_dir"`
	AirTempC         *float64 `json:"air_temp_c"`
	RelHumidityPct   *float64 `json:"rel_humidity_pct"`
	DewPointC        *float64 `json:"dew_point_c"`
	AirPressureHPa   *float64 `json:"air_pressure_hpa"`
	AirPressureTrend int      `json:"air_pressure_trend"`
	HorzVisibilityNM *float64 `json:"horz_visibility_nm"`
	WaterLevelM      *float64 `json:"water_level_m"`
	WaterLevelTrend  *float64 `json:"water_level_trend"`
	SurfCurSpeedKts  *float64 `json:"surf_cur_speed_kts"`
	SurfCurDir       *float64 `json:"surf_cur_dir"`
	CurSpeed2Kts     *float64 `json:"cur_speed_2_kts"`
	CurDir2          *float64 `json:"cur_dir_2"`
	CurDepth2M       *float64 `json:"cur_depth_2_m"`
	CurSpeed3Kts     *float64 `json:"cur_speed_3_kts"`
	CurDir3          *float64 `json:"cur_dir_3"`
	CurDepth3M       *float64 `json:"cur_depth_3_m"`
	WaveHeightM      *float64 `json:"wave_height_m"`
	WavePeriodS      *float64 `json:"wave_period_s"`
	WaveDir          *float64 `json:"wave_dir"`
	SwellHeightM     *float64 `json:"swell_height_m"`
	SwellPeriodS     *float64 `json:"swell_period_s"`
	SwellDir         *float64 `json:"swell_dir"`
	SeaStateBeaufort *float64 `json:"sea_state_beaufort"`
	WaterTempC       *float64 `json:"water_temp_c"`
	PrecipType       int      `json:"precip_type"`
	SalinityPpt      *float64 `json:"salinity_ppt"`
	Ice              *float64 `json:"ice"`
}

func (*MetHydro236) DAC() int     { return 1 }
func (*MetHydro236) FID() int     { return 11 }
func (*MetHydro236) Name() string { return "met_hydro_236" }

// Circ 236 marks unavailable fields with the all-ones pattern.
func decodeMetHydro236(c *bits.Cursor) (registry.Message, error) {
	m := &MetHydro236{
		Latitude:         c.Lat("latitude"),
		Longitude:        c.Lon("longitude"),
		Day:              int(c.Uint("day", 5)),
		Hour:             int(c.Uint("hour", 5)),
		Minute:           int(c.Uint("minute", 6)),
		WindAveKts:       c.UFloat("wind_ave", 7, 1, 127),
		WindGustKts:      c.UFloat("wind_gust", 7, 1, 127),
		WindDir:          c.UFloat("wind_dir", 9, 1, 511),
		WindGustDir:      c.UFloat("wind_gust_dir", 9, 1, 511),
		AirTempC:         c.UFloatOff("air_temp", 11, 10, -60, 2047),
		RelHumidityPct:   c.UFloat("rel_humidity", 7, 1, 127),
		DewPointC:        c.UFloatOff("dew_point", 10, 10, -20, 1023),
		AirPressureHPa:   c.UFloatOff("air_pressure", 9, 1, 800, 511),
		AirPressureTrend: int(c.Uint("air_pressure_trend", 2)),
		HorzVisibilityNM: c.UFloat("horz_visibility", 8, 10, 255),
		WaterLevelM:      c.UFloatOff("water_level", 9, 10, -10, 511),
		WaterLevelTrend:  c.UFloat("water_level_trend", 2, 1, 3),
		SurfCurSpeedKts:  c.UFloat("surf_cur_speed", 8, 10, 255),
		SurfCurDir:       c.UFloat("surf_cur_dir", 9, 1, 511),
		CurSpeed2Kts:     c.UFloat("cur_speed_2", 8, 10, 255),
		CurDir2:          c.UFloat("cur_dir_2", 9, 1, 511),
		CurDepth2M:       c.UFloat("cur_depth_2", 5, 1, 31),
		CurSpeed3Kts:     c.UFloat("cur_speed_3", 8, 10, 255),
		CurDir3:          c.UFloat("cur_dir_3", 9, 1, 511),
		CurDepth3M:       c.UFloat("cur_depth_3", 5, 1, 31),
		WaveHeightM:      c.UFloat("wave_height", 8, 10, 255),
		WavePeriodS:      c.UFloat("wave_period", 6, 1, 63),
		WaveDir:          c.UFloat("wave_dir", 9, 1, 511),
		SwellHeightM:     c.UFloat("swell_height", 8, 10, 255),
		SwellPeriodS:     c.UFloat("swell_period", 6, 1, 63),
		SwellDir:         c.UFloat("swell_dir", 9, 1, 511),
		SeaStateBeaufort: c.UFloat("sea_state", 4, 1, 15),
		WaterTempC:       c.UFloatOff("water_temp", 10, 10, -10, 1023),
		PrecipType:       int(c.Uint("precip_type", 3)),
		SalinityPpt:      c.UFloat("salinity", 9, 10, 511),
		Ice:              c.UFloat("ice", 2, 1, 3),
	}
	return m, c.Err()
}

// MetHydro is FID 31, meteorological and hydrological data per IMO
// Circ 289. The current standard met/hydro broadcast.
type MetHydro struct {
	Longitude        *float64 `json:"longitude"`
	Latitude         *float64 `json:"latitude"`
	PositionAccuracy bool     `json:"position_accuracy"`
	Day              int      `json:"day"`
	Hour             int      `json:"hour"`
	Minute           int      `json:"minute"`
	WindAveKts       *float64 `json:"wind_ave_kts"`
	WindGustKts      *float64 `json:"wind_gust_kts"`
	WindDir          *float64 `json:"wind_dir"`
	WindGustDir      *float64 `json:"wind_gust_dir"`
	AirTempC         *float64 `json:"air_temp_c"`
	RelHumidityPct   *float64 `json:"rel_humidity_pct"`
	DewPointC        *float64 `json:"dew_point_c"`
	AirPressureHPa   *float64 `json:"air_pressure_hpa"`
	AirPressureTrend int      `json:"air_pressure_trend"`
	HorzVisibilityNM *float64 `json:"horz_visibility_nm"`
	WaterLevelM      *float64 `json:"water_level_m"`
	WaterLevelTrend  *float64 `json:"water_level_trend"`
	SurfCurSpeedKts  *float64 `json:"surf_cur_speed_kts"`
	SurfCurDir       *float64 `json:"surf_cur_dir"`
	CurSpeed2Kts     *float64 `json:"cur_speed_2_kts"`
	CurDir2          *float64 `json:"cur_dir_2"`
	CurDepth2M       *float64 `json:"cur_depth_2_m"`
	CurSpeed3Kts     *float64 `json:"cur_speed_3_kts"`
	CurDir3          *float64 `json:"cur_dir_3"`
	CurDepth3M       *float64 `json:"cur_depth_3_m"`
	WaveHeightM      *float64 `json:"wave_height_m"`
	WavePeriodS      *float64 `json:"wave_period_s"`
	WaveDir          *float64 `json:"wave_dir"`
	SwellHeightM     *float64 `json:"swell_height_m"`
	SwellPeriodS     *float64 `json:"swell_period_s"`
	SwellDir         *float64 `json:"swell_dir"`
	SeaStateBeaufort *float64 `json:"sea_state_beaufort"`
	WaterTempC       *float64 `json:"water_temp_c"`
	PrecipType       int      `json:"precip_type"`
	SalinityPpt      *float64 `json:"salinity_ppt"`
	Ice              *float64 `json:"ice"`
}

func (*MetHydro) DAC() int     { return 1 }
func (*MetHydro) FID() int     { return 31 }
func (*MetHydro) Name() string { return "met_hydro" }

// Sentinels per the Circ 289 field tables as documented by GPSD.
func decodeMetHydro(c *bits.Cursor) (registry.Message, error) {
	m := &MetHydro{
		Longitude:        c.Lon("longitude"),
		Latitude:         c.Lat("latitude"),
		PositionAccuracy: c.Bool("position_accuracy"),
		Day:              int(c.Uint("day", 5)),
		Hour:             int(c.Uint("hour", 5)),
		Minute:           int(c.Uint("minute", 6)),
		WindAveKts:       c.UFloat("wind_ave", 7, 1, 127),
		WindGustKts:      c.UFloat("wind_gust", 7, 1, 127),
		WindDir:          c.UFloat("wind_dir", 9, 1, 360),
		WindGustDir:      c.UFloat("wind_gust_dir", 9, 1, 360),
		AirTempC:         c.SFloat("air_temp", 11, 10, -1024),
		RelHumidityPct:   c.UFloat("rel_humidity", 7, 1, 101),
		DewPointC:        c.SFloat("dew_point", 10, 10, 501),
		AirPressureHPa:   c.UFloatOff("air_pressure", 9, 100, 8, 403),
		AirPressureTrend: int(c.Uint("air_pressure_trend", 2)),
		HorzVisibilityNM: c.UFloat("horz_visibility", 8, 10, 127),
		WaterLevelM:      c.UFloatOff("water_level", 12, 100, -10, 4001),
		WaterLevelTrend:  c.UFloat("water_level_trend", 2, 1, 3),
		SurfCurSpeedKts:  c.UFloat("surf_cur_speed", 8, 10, 255),
		SurfCurDir:       c.UFloat("surf_cur_dir", 9, 1, 360),
		CurSpeed2Kts:     c.UFloat("cur_speed_2", 8, 10, 255),
		CurDir2:          c.UFloat("cur_dir_2", 9, 1, 360),
		CurDepth2M:       c.UFloat("cur_depth_2", 5, 1, 31),
		CurSpeed3Kts:     c.UFloat("cur_speed_3", 8, 10, 255),
		CurDir3:          c.UFloat("cur_dir_3", 9, 1, 360),
		CurDepth3M:       c.UFloat("cur_depth_3", 5, 1, 31),
		WaveHeightM:      c.UFloat("wave_height", 8, 10, 255),
		WavePeriodS:      c.UFloat("wave_period", 6, 1, 63),
		WaveDir:          c.UFloat("wave_dir", 9, 1, 360),
		SwellHeightM:     c.UFloat("swell_height", 8, 10, 255),
		SwellPeriodS:     c.UFloat("swell_period", 6, 1, 63),
		SwellDir:         c.UFloat("swell_dir", 9, 1, 360),
		SeaStateBeaufort: c.UFloat("sea_state", 4, 1, 13),
		WaterTempC:       c.SFloat("water_temp", 10, 10, 501),
		PrecipType:       int(c.Uint("precip_type", 3)),
		SalinityPpt:      c.UFloat("salinity", 9, 10, 501),
		Ice:              c.UFloat("ice", 2, 1, 3),
	}
	return m, c.Err()
}
