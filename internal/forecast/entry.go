package forecast

import (
	"encoding/json"
	"fmt"
	"time"

	"yrweather/internal/types"
)

// Window keys inside an entry's data object.
const (
	keyInstant     = "instant"
	keyNext1Hours  = "next_1_hours"
	keyNext6Hours  = "next_6_hours"
	keyNext12Hours = "next_12_hours"
	keySummary     = "summary"
	keyDetails     = "details"
)

// Entry is one timestamped slice of a location forecast.
type Entry struct {
	// Time is the entry's ISO 8601 UTC timestamp, verbatim from the payload.
	Time        string         `json:"time"`
	Instant     InstantDetails `json:"instant"`
	NextHour    *FutureWindow  `json:"next_1_hours,omitempty"`
	Next6Hours  *FutureWindow  `json:"next_6_hours,omitempty"`
	Next12Hours *FutureWindow  `json:"next_12_hours,omitempty"`
}

// ParsedTime parses Time as a UTC instant.
func (e Entry) ParsedTime() (time.Time, error) {
	return time.Parse(types.TimestampLayout, e.Time)
}

// FutureWindow is the forecast for a horizon starting at the entry's time.
// Summary and Details are nil when the payload omits them.
type FutureWindow struct {
	Summary *FutureSummary `json:"summary,omitempty"`
	Details *FutureDetails `json:"details,omitempty"`
}

// ParseEntry converts one raw time-series entry into an Entry.
//
// Only known field names are read; unknown keys are ignored so new upstream
// fields never break parsing. Absent windows and fields stay nil. A known key
// carrying a value of the wrong kind makes the whole entry invalid.
func ParseEntry(raw map[string]any) (Entry, error) {
	ts, ok := raw["time"].(string)
	if !ok || ts == "" {
		return Entry{}, malformed("entry has no time")
	}

	data, ok, err := mapField(raw, "data")
	if err != nil || !ok {
		return Entry{}, malformed("entry %s has no data object", ts)
	}

	instant, ok, err := mapField(data, keyInstant)
	if err != nil || !ok {
		return Entry{}, malformed("entry %s has no instant data", ts)
	}
	instantDetails, _, err := mapField(instant, keyDetails)
	if err != nil {
		return Entry{}, malformed("entry %s: instant: %v", ts, err)
	}

	entry := Entry{Time: ts}
	if entry.Instant, err = projectInstantDetails(instantDetails); err != nil {
		return Entry{}, malformed("entry %s: instant: %v", ts, err)
	}

	windows := []struct {
		key  string
		dest **FutureWindow
	}{
		{keyNext1Hours, &entry.NextHour},
		{keyNext6Hours, &entry.Next6Hours},
		{keyNext12Hours, &entry.Next12Hours},
	}
	for _, w := range windows {
		rawWindow, ok, err := mapField(data, w.key)
		if err != nil {
			return Entry{}, malformed("entry %s: %s: %v", ts, w.key, err)
		}
		if !ok {
			continue
		}
		window, err := parseWindow(rawWindow)
		if err != nil {
			return Entry{}, malformed("entry %s: %s: %v", ts, w.key, err)
		}
		*w.dest = window
	}

	return entry, nil
}

func parseWindow(raw map[string]any) (*FutureWindow, error) {
	var window FutureWindow

	summary, ok, err := mapField(raw, keySummary)
	if err != nil {
		return nil, err
	}
	if ok {
		s, err := projectFutureSummary(summary)
		if err != nil {
			return nil, fmt.Errorf("summary: %w", err)
		}
		window.Summary = &s
	}

	details, ok, err := mapField(raw, keyDetails)
	if err != nil {
		return nil, err
	}
	if ok {
		d, err := projectFutureDetails(details)
		if err != nil {
			return nil, fmt.Errorf("details: %w", err)
		}
		window.Details = &d
	}

	return &window, nil
}

func projectInstantDetails(m map[string]any) (InstantDetails, error) {
	p := projector{m: m}
	d := InstantDetails{
		AirPressureAtSeaLevel:      p.float(FieldAirPressureAtSeaLevel),
		AirTemperature:             p.float(FieldAirTemperature),
		AirTemperaturePercentile10: p.float(FieldAirTemperaturePercentile10),
		AirTemperaturePercentile90: p.float(FieldAirTemperaturePercentile90),
		CloudAreaFraction:          p.float(FieldCloudAreaFraction),
		CloudAreaFractionHigh:      p.float(FieldCloudAreaFractionHigh),
		CloudAreaFractionLow:       p.float(FieldCloudAreaFractionLow),
		CloudAreaFractionMedium:    p.float(FieldCloudAreaFractionMedium),
		DewPointTemperature:        p.float(FieldDewPointTemperature),
		FogAreaFraction:            p.float(FieldFogAreaFraction),
		RelativeHumidity:           p.float(FieldRelativeHumidity),
		UltravioletIndexClearSky:   p.float(FieldUltravioletIndexClearSky),
		WindFromDirection:          p.float(FieldWindFromDirection),
		WindSpeed:                  p.float(FieldWindSpeed),
		WindSpeedOfGust:            p.float(FieldWindSpeedOfGust),
		WindSpeedPercentile10:      p.float(FieldWindSpeedPercentile10),
		WindSpeedPercentile90:      p.float(FieldWindSpeedPercentile90),
	}
	return d, p.err
}

func projectFutureSummary(m map[string]any) (FutureSummary, error) {
	p := projector{m: m}
	s := FutureSummary{
		SymbolCode:       p.str(FieldSymbolCode),
		SymbolConfidence: p.str(FieldSymbolConfidence),
	}
	return s, p.err
}

func projectFutureDetails(m map[string]any) (FutureDetails, error) {
	p := projector{m: m}
	d := FutureDetails{
		AirPressureAtSeaLevel:      p.float(FieldAirPressureAtSeaLevel),
		AirTemperature:             p.float(FieldAirTemperature),
		AirTemperatureMax:          p.float(FieldAirTemperatureMax),
		AirTemperatureMin:          p.float(FieldAirTemperatureMin),
		AirTemperaturePercentile10: p.float(FieldAirTemperaturePercentile10),
		AirTemperaturePercentile90: p.float(FieldAirTemperaturePercentile90),
		CloudAreaFraction:          p.float(FieldCloudAreaFraction),
		CloudAreaFractionHigh:      p.float(FieldCloudAreaFractionHigh),
		CloudAreaFractionLow:       p.float(FieldCloudAreaFractionLow),
		CloudAreaFractionMedium:    p.float(FieldCloudAreaFractionMedium),
		DewPointTemperature:        p.float(FieldDewPointTemperature),
		FogAreaFraction:            p.float(FieldFogAreaFraction),
		PrecipitationAmount:        p.float(FieldPrecipitationAmount),
		PrecipitationAmountMax:     p.float(FieldPrecipitationAmountMax),
		PrecipitationAmountMin:     p.float(FieldPrecipitationAmountMin),
		ProbabilityOfPrecipitation: p.float(FieldProbabilityOfPrecipitation),
		ProbabilityOfThunder:       p.float(FieldProbabilityOfThunder),
		RelativeHumidity:           p.float(FieldRelativeHumidity),
		UltravioletIndexClearSky:   p.float(FieldUltravioletIndexClearSky),
		WindFromDirection:          p.float(FieldWindFromDirection),
		WindSpeed:                  p.float(FieldWindSpeed),
		WindSpeedOfGust:            p.float(FieldWindSpeedOfGust),
		WindSpeedPercentile10:      p.float(FieldWindSpeedPercentile10),
		WindSpeedPercentile90:      p.float(FieldWindSpeedPercentile90),
	}
	return d, p.err
}

func projectUnits(m map[string]any) (Units, error) {
	p := projector{m: m}
	u := Units{
		AirPressureAtSeaLevel:      p.str(FieldAirPressureAtSeaLevel),
		AirTemperature:             p.str(FieldAirTemperature),
		AirTemperatureMax:          p.str(FieldAirTemperatureMax),
		AirTemperatureMin:          p.str(FieldAirTemperatureMin),
		AirTemperaturePercentile10: p.str(FieldAirTemperaturePercentile10),
		AirTemperaturePercentile90: p.str(FieldAirTemperaturePercentile90),
		CloudAreaFraction:          p.str(FieldCloudAreaFraction),
		CloudAreaFractionHigh:      p.str(FieldCloudAreaFractionHigh),
		CloudAreaFractionLow:       p.str(FieldCloudAreaFractionLow),
		CloudAreaFractionMedium:    p.str(FieldCloudAreaFractionMedium),
		DewPointTemperature:        p.str(FieldDewPointTemperature),
		FogAreaFraction:            p.str(FieldFogAreaFraction),
		PrecipitationAmount:        p.str(FieldPrecipitationAmount),
		PrecipitationAmountMax:     p.str(FieldPrecipitationAmountMax),
		PrecipitationAmountMin:     p.str(FieldPrecipitationAmountMin),
		ProbabilityOfPrecipitation: p.str(FieldProbabilityOfPrecipitation),
		ProbabilityOfThunder:       p.str(FieldProbabilityOfThunder),
		RelativeHumidity:           p.str(FieldRelativeHumidity),
		UltravioletIndexClearSky:   p.str(FieldUltravioletIndexClearSky),
		WindFromDirection:          p.str(FieldWindFromDirection),
		WindSpeed:                  p.str(FieldWindSpeed),
		WindSpeedOfGust:            p.str(FieldWindSpeedOfGust),
		WindSpeedPercentile10:      p.str(FieldWindSpeedPercentile10),
		WindSpeedPercentile90:      p.str(FieldWindSpeedPercentile90),
	}
	return u, p.err
}

func projectGeometry(m map[string]any) (Geometry, error) {
	p := projector{m: m}
	g := Geometry{Type: p.str("type")}
	if p.err != nil {
		return Geometry{}, p.err
	}

	raw, ok := m["coordinates"]
	if !ok || raw == nil {
		return g, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return Geometry{}, fmt.Errorf("coordinates: expected array, got %T", raw)
	}
	g.Coordinates = make([]float64, 0, len(list))
	for i, v := range list {
		f, err := toFloat(v)
		if err != nil {
			return Geometry{}, fmt.Errorf("coordinates[%d]: %w", i, err)
		}
		g.Coordinates = append(g.Coordinates, f)
	}
	return g, nil
}

// projector reads known keys out of a generic mapping. The first type
// mismatch is kept in err; later reads return nil.
type projector struct {
	m   map[string]any
	err error
}

func (p *projector) float(key string) *float64 {
	if p.err != nil {
		return nil
	}
	v, ok := p.m[key]
	if !ok || v == nil {
		return nil
	}
	f, err := toFloat(v)
	if err != nil {
		p.err = fmt.Errorf("field %q: %w", key, err)
		return nil
	}
	return &f
}

func (p *projector) str(key string) *string {
	if p.err != nil {
		return nil
	}
	v, ok := p.m[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		p.err = fmt.Errorf("field %q: expected string, got %T", key, v)
		return nil
	}
	return &s
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

// mapField returns m[key] as a mapping. A missing or null key reports
// ok=false; any other non-mapping value is an error.
func mapField(m map[string]any, key string) (map[string]any, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%s: expected object, got %T", key, v)
	}
	return sub, true, nil
}

func malformed(format string, args ...any) *types.AppError {
	return types.InvalidArgument("malformed forecast: "+format, args...)
}
