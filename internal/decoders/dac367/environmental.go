package dac367

import (
	"ais_watch/internal/bits"
	"ais_watch/internal/registry"
)

// Sensor report type discriminators for FID 33.
const (
	reportLocation    = 0
	reportWind        = 1
	reportWaterLevel  = 2
	reportCurrent2D   = 3
	reportSeaState    = 7
	reportSalinity    = 8
	reportWeather     = 9
	reportAirGap      = 10
	reportAirPressure = 11
)

// reportTypeNames covers the full USCG assignment, including types this
// decoder has no layout for; unknown names annotate errors and output.
var reportTypeNames = map[int]string{
	0:  "Location",
	1:  "Wind",
	2:  "Water Level",
	3:  "Current 2D",
	4:  "Current 3D",
	5:  "Horizontal Current 2D",
	6:  "Horizontal Current 3D",
	7:  "Sea State",
	8:  "Salinity",
	9:  "Weather",
	10: "Air Gap",
	11: "Air Pressure",
	12: "Ice",
}

// minReportBits is the smallest span that can still open a report; the
// loop stops when less than this remains.
const minReportBits = 27

// maxReports bounds the report loop regardless of payload size.
const maxReports = 8

// SensorReport is the closed set of environmental report records.
type SensorReport interface {
	sensorReport()
}

// reportHeader is the common day/hour/minute/site prefix shared by all
// measurement reports (everything except Location).
type reportHeader struct {
	ReportType int    `json:"type"`
	TypeName   string `json:"type_name"`
	Day        int    `json:"day"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
	SiteID     int    `json:"site_id"`
}

func readHeader(c *bits.Cursor, typ int) reportHeader {
	return reportHeader{
		ReportType: typ,
		TypeName:   reportTypeNames[typ],
		Day:        int(c.Uint("day", 5)),
		Hour:       int(c.Uint("hour", 5)),
		Minute:     int(c.Uint("minute", 6)),
		SiteID:     int(c.Uint("site_id", 7)),
	}
}

// LocationReport identifies the sensor site's position.
type LocationReport struct {
	ReportType int      `json:"type"`
	TypeName   string   `json:"type_name"`
	Version    int      `json:"version"`
	Longitude  *float64 `json:"longitude"`
	Latitude   *float64 `json:"latitude"`
	Precision  int      `json:"precision"`
	AltitudeM  float64  `json:"altitude_m"`
	Owner      int      `json:"owner"`
	Timeout    int      `json:"timeout"`
}

// WindReport carries measured and forecast wind.
type WindReport struct {
	reportHeader
	WindSpeedKts         *float64 `json:"wind_speed_kts"`
	WindGustKts          *float64 `json:"wind_gust_kts"`
	WindDir              *float64 `json:"wind_dir"`
	WindGustDir          *float64 `json:"wind_gust_dir"`
	SensorType           int      `json:"sensor_type"`
	ForecastWindSpeedKts *float64 `json:"forecast_wind_speed_kts"`
	ForecastWindGustKts  *float64 `json:"forecast_wind_gust_kts"`
	ForecastWindDir      *float64 `json:"forecast_wind_dir"`
	ForecastDay          int      `json:"forecast_day"`
	ForecastHour         int      `json:"forecast_hour"`
	ForecastMinute       int      `json:"forecast_minute"`
	DurationMin          int      `json:"duration_min"`
}

// WaterLevelReport carries measured and forecast water level.
type WaterLevelReport struct {
	reportHeader
	LevelType      int     `json:"level_type"`
	LevelM         float64 `json:"level_m"`
	Trend          int     `json:"trend"`
	Datum          int     `json:"datum"`
	SensorType     int     `json:"sensor_type"`
	ForecastType   int     `json:"forecast_type"`
	ForecastDay    int     `json:"forecast_day"`
	ForecastHour   int     `json:"forecast_hour"`
	ForecastMinute int     `json:"forecast_minute"`
	DurationMin    int     `json:"duration_min"`
}

// Current2DReport carries a single-depth surface current measurement.
type Current2DReport struct {
	reportHeader
	CurSpeedKts float64 `json:"cur_speed_kts"`
	CurDir      int     `json:"cur_dir"`
	CurDepthM   int     `json:"cur_depth_m"`
}

// SeaStateReport carries swell, wave and water temperature data.
type SeaStateReport struct {
	reportHeader
	SwellHeightM     float64 `json:"swell_height_m"`
	SwellPeriodS     int     `json:"swell_period_s"`
	SwellDir         int     `json:"swell_dir"`
	SeaStateBeaufort int     `json:"sea_state_beaufort"`
	SwellSensorType  int     `json:"swell_sensor_type"`
	WaterTempC       float64 `json:"water_temp_c"`
	WaterTempDepthM  float64 `json:"water_temp_depth_m"`
	WaterSensorType  int     `json:"water_sensor_type"`
	WaveHeightM      float64 `json:"wave_height_m"`
	WavePeriodS      int     `json:"wave_period_s"`
	WaveDir          int     `json:"wave_dir"`
	WaveSensorType   int     `json:"wave_sensor_type"`
	SalinityPpt      float64 `json:"salinity_ppt"`
}

// SalinityReport carries conductivity-derived salinity.
type SalinityReport struct {
	reportHeader
	WaterTempC   float64 `json:"water_temp_c"`
	Conductivity float64 `json:"conductivity"`
	PressureDbar float64 `json:"pressure_dbar"`
	SalinityPpt  float64 `json:"salinity_ppt"`
	SalinityType int     `json:"salinity_type"`
	SensorType   int     `json:"sensor_type"`
}

// WeatherReport carries shore-station weather data.
type WeatherReport struct {
	reportHeader
	AirTempC       float64 `json:"air_temp_c"`
	AirTempSensor  int     `json:"air_temp_sensor"`
	PrecipType     int     `json:"precip_type"`
	VisibilityNM   float64 `json:"visibility_nm"`
	DewPointC      float64 `json:"dew_point_c"`
	DewSensor      int     `json:"dew_sensor"`
	AirPressureHPa int     `json:"air_pressure_hpa"`
	PressureTrend  int     `json:"pressure_trend"`
	PressureSensor int     `json:"pressure_sensor"`
	SalinityPpt    float64 `json:"salinity_ppt"`
}

// AirGapReport carries bridge clearance data.
type AirGapReport struct {
	reportHeader
	AirDraughtM      float64 `json:"air_draught_m"`
	AirGapM          float64 `json:"air_gap_m"`
	AirGapTrend      int     `json:"air_gap_trend"`
	PredictedAirGapM float64 `json:"predicted_air_gap_m"`
	ForecastDay      int     `json:"forecast_day"`
	ForecastHour     int     `json:"forecast_hour"`
	ForecastMinute   int     `json:"forecast_minute"`
}

// AirPressureReport carries measured and forecast barometric pressure.
type AirPressureReport struct {
	reportHeader
	AirPressureHPa   int `json:"air_pressure_hpa"`
	PressureTrend    int `json:"pressure_trend"`
	SensorType       int `json:"sensor_type"`
	ForecastPressure int `json:"forecast_pressure"`
	ForecastDay      int `json:"forecast_day"`
	ForecastHour     int `json:"forecast_hour"`
	ForecastMinute   int `json:"forecast_minute"`
	DurationMin      int `json:"duration_min"`
}

func (*LocationReport) sensorReport()    {}
func (*WindReport) sensorReport()        {}
func (*WaterLevelReport) sensorReport()  {}
func (*Current2DReport) sensorReport()   {}
func (*SeaStateReport) sensorReport()    {}
func (*SalinityReport) sensorReport()    {}
func (*WeatherReport) sensorReport()     {}
func (*AirGapReport) sensorReport()      {}
func (*AirPressureReport) sensorReport() {}

// Environmental is FID 33, a multi-sensor environmental broadcast: a
// run of self-describing report records.
type Environmental struct {
	Reports []SensorReport `json:"reports"`
}

func (*Environmental) DAC() int     { return 367 }
func (*Environmental) FID() int     { return 33 }
func (*Environmental) Name() string { return "environmental" }

func decodeEnvironmental(c *bits.Cursor) (registry.Message, error) {
	m := &Environmental{Reports: []SensorReport{}}
	for len(m.Reports) < maxReports && c.Remaining() >= minReportBits {
		start := c.Pos()
		typ := c.Uint("report_type", 4)

		var r SensorReport
		switch int(typ) {
		case reportLocation:
			r = &LocationReport{
				ReportType: reportLocation,
				TypeName:   reportTypeNames[reportLocation],
				Version:    int(c.Uint("version", 6)),
				Longitude:  c.Lon28("longitude"),
				Latitude:   c.Lat28("latitude"),
				Precision:  int(c.Uint("precision", 4)),
				AltitudeM:  float64(c.Int("altitude", 12)) / 10,
				Owner:      int(c.Uint("owner", 4)),
				Timeout:    int(c.Uint("timeout", 3)),
			}
		case reportWind:
			w := &WindReport{reportHeader: readHeader(c, reportWind)}
			w.WindSpeedKts = c.UFloat("wind_speed", 7, 1, 127)
			w.WindGustKts = c.UFloat("wind_gust", 7, 1, 127)
			w.WindDir = c.UFloat("wind_dir", 9, 1, 360)
			w.WindGustDir = c.UFloat("wind_gust_dir", 9, 1, 360)
			w.SensorType = int(c.Uint("sensor_type", 3))
			w.ForecastWindSpeedKts = c.UFloat("forecast_wind_speed", 7, 1, 127)
			w.ForecastWindGustKts = c.UFloat("forecast_wind_gust", 7, 1, 127)
			w.ForecastWindDir = c.UFloat("forecast_wind_dir", 9, 1, 360)
			w.ForecastDay = int(c.Uint("forecast_day", 5))
			w.ForecastHour = int(c.Uint("forecast_hour", 5))
			w.ForecastMinute = int(c.Uint("forecast_minute", 6))
			w.DurationMin = int(c.Uint("duration", 8))
			r = w
		case reportWaterLevel:
			w := &WaterLevelReport{reportHeader: readHeader(c, reportWaterLevel)}
			w.LevelType = int(c.Uint("level_type", 3))
			w.LevelM = float64(c.Int("level", 16)) / 100
			w.Trend = int(c.Uint("trend", 2))
			w.Datum = int(c.Uint("datum", 5))
			w.SensorType = int(c.Uint("sensor_type", 3))
			w.ForecastType = int(c.Uint("forecast_type", 3))
			w.ForecastDay = int(c.Uint("forecast_day", 5))
			w.ForecastHour = int(c.Uint("forecast_hour", 5))
			w.ForecastMinute = int(c.Uint("forecast_minute", 6))
			w.DurationMin = int(c.Uint("duration", 8))
			r = w
		case reportCurrent2D:
			w := &Current2DReport{reportHeader: readHeader(c, reportCurrent2D)}
			w.CurSpeedKts = float64(c.Uint("cur_speed", 8)) / 10
			w.CurDir = int(c.Uint("cur_dir", 9))
			w.CurDepthM = int(c.Uint("cur_depth", 9))
			r = w
		case reportSeaState:
			w := &SeaStateReport{reportHeader: readHeader(c, reportSeaState)}
			w.SwellHeightM = float64(c.Uint("swell_height", 8)) / 10
			w.SwellPeriodS = int(c.Uint("swell_period", 6))
			w.SwellDir = int(c.Uint("swell_dir", 9))
			w.SeaStateBeaufort = int(c.Uint("sea_state", 4))
			w.SwellSensorType = int(c.Uint("swell_sensor_type", 3))
			w.WaterTempC = float64(c.Int("water_temp", 10)) / 10
			w.WaterTempDepthM = float64(c.Uint("water_temp_depth", 7)) / 10
			w.WaterSensorType = int(c.Uint("water_sensor_type", 3))
			w.WaveHeightM = float64(c.Uint("wave_height", 8)) / 10
			w.WavePeriodS = int(c.Uint("wave_period", 6))
			w.WaveDir = int(c.Uint("wave_dir", 9))
			w.WaveSensorType = int(c.Uint("wave_sensor_type", 3))
			w.SalinityPpt = float64(c.Uint("salinity", 9)) / 10
			r = w
		case reportSalinity:
			w := &SalinityReport{reportHeader: readHeader(c, reportSalinity)}
			w.WaterTempC = float64(c.Int("water_temp", 10)) / 10
			w.Conductivity = float64(c.Uint("conductivity", 10)) / 100
			w.PressureDbar = float64(c.Uint("pressure", 16)) / 10
			w.SalinityPpt = float64(c.Uint("salinity", 9)) / 10
			w.SalinityType = int(c.Uint("salinity_type", 2))
			w.SensorType = int(c.Uint("sensor_type", 3))
			r = w
		case reportWeather:
			w := &WeatherReport{reportHeader: readHeader(c, reportWeather)}
			w.AirTempC = float64(c.Int("air_temp", 11)) / 10
			w.AirTempSensor = int(c.Uint("air_temp_sensor", 3))
			w.PrecipType = int(c.Uint("precip_type", 3))
			w.VisibilityNM = float64(c.Uint("visibility", 8)) / 10
			w.DewPointC = float64(c.Int("dew_point", 10)) / 10
			w.DewSensor = int(c.Uint("dew_sensor", 3))
			w.AirPressureHPa = int(c.Uint("air_pressure", 9)) + 800
			w.PressureTrend = int(c.Uint("pressure_trend", 2))
			w.PressureSensor = int(c.Uint("pressure_sensor", 3))
			w.SalinityPpt = float64(c.Uint("salinity", 9)) / 10
			r = w
		case reportAirGap:
			w := &AirGapReport{reportHeader: readHeader(c, reportAirGap)}
			w.AirDraughtM = float64(c.Uint("air_draught", 13)) / 10
			w.AirGapM = float64(c.Uint("air_gap", 13)) / 10
			w.AirGapTrend = int(c.Uint("air_gap_trend", 2))
			w.PredictedAirGapM = float64(c.Uint("predicted_air_gap", 13)) / 10
			w.ForecastDay = int(c.Uint("forecast_day", 5))
			w.ForecastHour = int(c.Uint("forecast_hour", 5))
			w.ForecastMinute = int(c.Uint("forecast_minute", 6))
			r = w
		case reportAirPressure:
			w := &AirPressureReport{reportHeader: readHeader(c, reportAirPressure)}
			w.AirPressureHPa = int(c.Uint("air_pressure", 9)) + 800
			w.PressureTrend = int(c.Uint("pressure_trend", 2))
			w.SensorType = int(c.Uint("sensor_type", 3))
			w.ForecastPressure = int(c.Uint("forecast_pressure", 9)) + 800
			w.ForecastDay = int(c.Uint("forecast_day", 5))
			w.ForecastHour = int(c.Uint("forecast_hour", 5))
			w.ForecastMinute = int(c.Uint("forecast_minute", 6))
			w.DurationMin = int(c.Uint("duration", 8))
			r = w
		default:
			return nil, registry.NewUnknownDiscriminator(typ, len(m.Reports), start)
		}

		if err := c.Err(); err != nil {
			return nil, err
		}
		m.Reports = append(m.Reports, r)
	}
	return m, c.Err()
}
