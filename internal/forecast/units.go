package forecast

// Field names shared by the Locationforecast payloads. Instant details,
// future details and the unit table are all keyed by these names.
const (
	FieldAirPressureAtSeaLevel      = "air_pressure_at_sea_level"
	FieldAirTemperature             = "air_temperature"
	FieldAirTemperatureMax          = "air_temperature_max"
	FieldAirTemperatureMin          = "air_temperature_min"
	FieldAirTemperaturePercentile10 = "air_temperature_percentile_10"
	FieldAirTemperaturePercentile90 = "air_temperature_percentile_90"
	FieldCloudAreaFraction          = "cloud_area_fraction"
	FieldCloudAreaFractionHigh      = "cloud_area_fraction_high"
	FieldCloudAreaFractionLow       = "cloud_area_fraction_low"
	FieldCloudAreaFractionMedium    = "cloud_area_fraction_medium"
	FieldDewPointTemperature        = "dew_point_temperature"
	FieldFogAreaFraction            = "fog_area_fraction"
	FieldPrecipitationAmount        = "precipitation_amount"
	FieldPrecipitationAmountMax     = "precipitation_amount_max"
	FieldPrecipitationAmountMin     = "precipitation_amount_min"
	FieldProbabilityOfPrecipitation = "probability_of_precipitation"
	FieldProbabilityOfThunder       = "probability_of_thunder"
	FieldRelativeHumidity           = "relative_humidity"
	FieldUltravioletIndexClearSky   = "ultraviolet_index_clear_sky"
	FieldWindFromDirection          = "wind_from_direction"
	FieldWindSpeed                  = "wind_speed"
	FieldWindSpeedOfGust            = "wind_speed_of_gust"
	FieldWindSpeedPercentile10      = "wind_speed_percentile_10"
	FieldWindSpeedPercentile90      = "wind_speed_percentile_90"
	FieldSymbolCode                 = "symbol_code"
	FieldSymbolConfidence           = "symbol_confidence"
)

// InstantDetailKeys is the known field set of InstantDetails.
var InstantDetailKeys = []string{
	FieldAirPressureAtSeaLevel,
	FieldAirTemperature,
	FieldAirTemperaturePercentile10,
	FieldAirTemperaturePercentile90,
	FieldCloudAreaFraction,
	FieldCloudAreaFractionHigh,
	FieldCloudAreaFractionLow,
	FieldCloudAreaFractionMedium,
	FieldDewPointTemperature,
	FieldFogAreaFraction,
	FieldRelativeHumidity,
	FieldUltravioletIndexClearSky,
	FieldWindFromDirection,
	FieldWindSpeed,
	FieldWindSpeedOfGust,
	FieldWindSpeedPercentile10,
	FieldWindSpeedPercentile90,
}

// FutureDetailKeys is the known field set of FutureDetails and Units.
var FutureDetailKeys = []string{
	FieldAirPressureAtSeaLevel,
	FieldAirTemperature,
	FieldAirTemperatureMax,
	FieldAirTemperatureMin,
	FieldAirTemperaturePercentile10,
	FieldAirTemperaturePercentile90,
	FieldCloudAreaFraction,
	FieldCloudAreaFractionHigh,
	FieldCloudAreaFractionLow,
	FieldCloudAreaFractionMedium,
	FieldDewPointTemperature,
	FieldFogAreaFraction,
	FieldPrecipitationAmount,
	FieldPrecipitationAmountMax,
	FieldPrecipitationAmountMin,
	FieldProbabilityOfPrecipitation,
	FieldProbabilityOfThunder,
	FieldRelativeHumidity,
	FieldUltravioletIndexClearSky,
	FieldWindFromDirection,
	FieldWindSpeed,
	FieldWindSpeedOfGust,
	FieldWindSpeedPercentile10,
	FieldWindSpeedPercentile90,
}

// UnitKeys is the known field set of Units. It matches FutureDetailKeys.
var UnitKeys = FutureDetailKeys

// InstantDetails holds the conditions at the exact time of an entry.
// A nil field was absent from the payload.
type InstantDetails struct {
	AirPressureAtSeaLevel      *float64 `json:"air_pressure_at_sea_level,omitempty"`
	AirTemperature             *float64 `json:"air_temperature,omitempty"`
	AirTemperaturePercentile10 *float64 `json:"air_temperature_percentile_10,omitempty"`
	AirTemperaturePercentile90 *float64 `json:"air_temperature_percentile_90,omitempty"`
	CloudAreaFraction          *float64 `json:"cloud_area_fraction,omitempty"`
	CloudAreaFractionHigh      *float64 `json:"cloud_area_fraction_high,omitempty"`
	CloudAreaFractionLow       *float64 `json:"cloud_area_fraction_low,omitempty"`
	CloudAreaFractionMedium    *float64 `json:"cloud_area_fraction_medium,omitempty"`
	DewPointTemperature        *float64 `json:"dew_point_temperature,omitempty"`
	FogAreaFraction            *float64 `json:"fog_area_fraction,omitempty"`
	RelativeHumidity           *float64 `json:"relative_humidity,omitempty"`
	UltravioletIndexClearSky   *float64 `json:"ultraviolet_index_clear_sky,omitempty"`
	WindFromDirection          *float64 `json:"wind_from_direction,omitempty"`
	WindSpeed                  *float64 `json:"wind_speed,omitempty"`
	WindSpeedOfGust            *float64 `json:"wind_speed_of_gust,omitempty"`
	WindSpeedPercentile10      *float64 `json:"wind_speed_percentile_10,omitempty"`
	WindSpeedPercentile90      *float64 `json:"wind_speed_percentile_90,omitempty"`
}

// FutureSummary classifies the weather of a future window.
type FutureSummary struct {
	SymbolCode       *string `json:"symbol_code,omitempty"`
	SymbolConfidence *string `json:"symbol_confidence,omitempty"`
}

// FutureDetails holds aggregated values for a future window. Which fields are
// present varies per entry: compact forecasts often carry precipitation only.
type FutureDetails struct {
	AirPressureAtSeaLevel      *float64 `json:"air_pressure_at_sea_level,omitempty"`
	AirTemperature             *float64 `json:"air_temperature,omitempty"`
	AirTemperatureMax          *float64 `json:"air_temperature_max,omitempty"`
	AirTemperatureMin          *float64 `json:"air_temperature_min,omitempty"`
	AirTemperaturePercentile10 *float64 `json:"air_temperature_percentile_10,omitempty"`
	AirTemperaturePercentile90 *float64 `json:"air_temperature_percentile_90,omitempty"`
	CloudAreaFraction          *float64 `json:"cloud_area_fraction,omitempty"`
	CloudAreaFractionHigh      *float64 `json:"cloud_area_fraction_high,omitempty"`
	CloudAreaFractionLow       *float64 `json:"cloud_area_fraction_low,omitempty"`
	CloudAreaFractionMedium    *float64 `json:"cloud_area_fraction_medium,omitempty"`
	DewPointTemperature        *float64 `json:"dew_point_temperature,omitempty"`
	FogAreaFraction            *float64 `json:"fog_area_fraction,omitempty"`
	PrecipitationAmount        *float64 `json:"precipitation_amount,omitempty"`
	PrecipitationAmountMax     *float64 `json:"precipitation_amount_max,omitempty"`
	PrecipitationAmountMin     *float64 `json:"precipitation_amount_min,omitempty"`
	ProbabilityOfPrecipitation *float64 `json:"probability_of_precipitation,omitempty"`
	ProbabilityOfThunder       *float64 `json:"probability_of_thunder,omitempty"`
	RelativeHumidity           *float64 `json:"relative_humidity,omitempty"`
	UltravioletIndexClearSky   *float64 `json:"ultraviolet_index_clear_sky,omitempty"`
	WindFromDirection          *float64 `json:"wind_from_direction,omitempty"`
	WindSpeed                  *float64 `json:"wind_speed,omitempty"`
	WindSpeedOfGust            *float64 `json:"wind_speed_of_gust,omitempty"`
	WindSpeedPercentile10      *float64 `json:"wind_speed_percentile_10,omitempty"`
	WindSpeedPercentile90      *float64 `json:"wind_speed_percentile_90,omitempty"`
}

// Units maps each field to the unit the forecast reports it in
// (e.g. "celsius", "hPa", "m/s").
type Units struct {
	AirPressureAtSeaLevel      *string `json:"air_pressure_at_sea_level,omitempty"`
	AirTemperature             *string `json:"air_temperature,omitempty"`
	AirTemperatureMax          *string `json:"air_temperature_max,omitempty"`
	AirTemperatureMin          *string `json:"air_temperature_min,omitempty"`
	AirTemperaturePercentile10 *string `json:"air_temperature_percentile_10,omitempty"`
	AirTemperaturePercentile90 *string `json:"air_temperature_percentile_90,omitempty"`
	CloudAreaFraction          *string `json:"cloud_area_fraction,omitempty"`
	CloudAreaFractionHigh      *string `json:"cloud_area_fraction_high,omitempty"`
	CloudAreaFractionLow       *string `json:"cloud_area_fraction_low,omitempty"`
	CloudAreaFractionMedium    *string `json:"cloud_area_fraction_medium,omitempty"`
	DewPointTemperature        *string `json:"dew_point_temperature,omitempty"`
	FogAreaFraction            *string `json:"fog_area_fraction,omitempty"`
	PrecipitationAmount        *string `json:"precipitation_amount,omitempty"`
	PrecipitationAmountMax     *string `json:"precipitation_amount_max,omitempty"`
	PrecipitationAmountMin     *string `json:"precipitation_amount_min,omitempty"`
	ProbabilityOfPrecipitation *string `json:"probability_of_precipitation,omitempty"`
	ProbabilityOfThunder       *string `json:"probability_of_thunder,omitempty"`
	RelativeHumidity           *string `json:"relative_humidity,omitempty"`
	UltravioletIndexClearSky   *string `json:"ultraviolet_index_clear_sky,omitempty"`
	WindFromDirection          *string `json:"wind_from_direction,omitempty"`
	WindSpeed                  *string `json:"wind_speed,omitempty"`
	WindSpeedOfGust            *string `json:"wind_speed_of_gust,omitempty"`
	WindSpeedPercentile10      *string `json:"wind_speed_percentile_10,omitempty"`
	WindSpeedPercentile90      *string `json:"wind_speed_percentile_90,omitempty"`
}

// Geometry is the GeoJSON point the forecast was produced for.
// Coordinates are [lon, lat, altitude].
type Geometry struct {
	Type        *string   `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}
