package textforecast

import (
	"fmt"
	"time"
	_ "time/tzdata" // Europe/Oslo must resolve on hosts without a zoneinfo database.

	"yrweather/internal/types"
)

// IssuerZone is the zone text forecast periods are expressed in.
const IssuerZone = "Europe/Oslo"

var issuerLocation = mustLoadLocation(IssuerZone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("textforecast: loading %s: %v", name, err))
	}
	return loc
}

// Location returns the issuer's time zone.
func Location() *time.Location {
	return issuerLocation
}

// ParseLocalTime parses a period bound. Bounds without an offset are read as
// wall-clock time in the issuer's zone; bounds with an offset keep it.
func ParseLocalTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(issuerLocation), nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, issuerLocation)
}

// CurrentPeriod returns the period that applies now.
func CurrentPeriod(periods []Period) (Period, error) {
	return CurrentPeriodAt(periods, time.Now())
}

// CurrentPeriodAt returns the first period whose bounds include ref, both
// ends inclusive, with ref taken in the issuer's zone. When no period
// matches, the first period is returned.
func CurrentPeriodAt(periods []Period, ref time.Time) (Period, error) {
	if len(periods) == 0 {
		return Period{}, types.InvalidArgument("no text forecast periods to choose from")
	}
	ref = ref.In(issuerLocation)
	for _, p := range periods {
		if p.Contains(ref) {
			return p, nil
		}
	}
	return periods[0], nil
}

// Forecasts is a normalized Textforecast document.
type Forecasts struct {
	Kind       types.TextForecastKind `json:"kind"`
	LicenseURL string                 `json:"license_url"`
	Periods    []Period               `json:"periods"`

	now func() time.Time
}

// Option configures Forecasts.
type Option func(*Forecasts)

// WithClock overrides the clock used by Now. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Forecasts) {
		f.now = now
	}
}

// NewForecasts normalizes a decoded document and reads its license metadata.
func NewForecasts(doc map[string]any, kind types.TextForecastKind, opts ...Option) (*Forecasts, error) {
	periods, err := Normalize(doc, kind)
	if err != nil {
		return nil, err
	}

	f := &Forecasts{Kind: kind, Periods: periods, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}

	if meta, ok := unwrapRoot(doc)["meta"].(map[string]any); ok {
		f.LicenseURL, _ = meta["licenseurl"].(string)
	}
	return f, nil
}

// Now returns the period that applies at the current time.
func (f *Forecasts) Now() (Period, error) {
	return CurrentPeriodAt(f.Periods, f.now())
}
