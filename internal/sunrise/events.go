// Package sunrise models the Sunrise 3.0 sun and moon event documents.
package sunrise

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"
)

// Body names reported in the properties of an event document.
const (
	BodySun  = "Sun"
	BodyMoon = "Moon"
)

// Geometry is the GeoJSON point the events were computed for.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// When holds the interval the events cover, as two ISO 8601 timestamps.
type When struct {
	Interval []string `json:"interval"`
}

// Common is shared by sun and moon event documents.
type Common struct {
	Type       string   `json:"type"`
	Copyright  string   `json:"copyright"`
	LicenseURL string   `json:"licenseURL"`
	Geometry   Geometry `json:"geometry"`
	When       When     `json:"when"`
}

// Interval parses the covered interval. ok is false when the document does
// not carry a well-formed pair.
func (c Common) Interval() (from, to time.Time, ok bool) {
	if len(c.When.Interval) != 2 {
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse(time.RFC3339, c.When.Interval[0])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(time.RFC3339, c.When.Interval[1])
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// TimeWithAzimuth is a rise or set event. Time and Azimuth are nil when the
// body does not rise or set that day (polar day or night).
type TimeWithAzimuth struct {
	Time    *string  `json:"time"`
	Azimuth *float64 `json:"azimuth"`
}

// TimeWithElevation is a culmination event.
type TimeWithElevation struct {
	Time                *string  `json:"time"`
	DiscCentreElevation *float64 `json:"disc_centre_elevation"`
	Visible             *bool    `json:"visible"`
}

// ParsedTime parses an event time. ok is false when the event did not occur.
func ParsedTime(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	// Event times carry minute precision with an offset, e.g. 2023-10-12T07:52+02:00.
	for _, layout := range []string{"2006-01-02T15:04Z07:00", time.RFC3339} {
		if t, err := time.Parse(layout, *s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SunProperties is the properties object of a sun document.
type SunProperties struct {
	Body          string            `json:"body"`
	Sunrise       TimeWithAzimuth   `json:"sunrise"`
	Sunset        TimeWithAzimuth   `json:"sunset"`
	SolarNoon     TimeWithElevation `json:"solarnoon"`
	SolarMidnight TimeWithElevation `json:"solarmidnight"`
}

// SunEvents is a decoded sunrise/3.0/sun response.
type SunEvents struct {
	Common
	Properties SunProperties `json:"properties"`
}

// DayLength returns the time between sunrise and sunset. ok is false when
// either event is missing.
func (s *SunEvents) DayLength() (time.Duration, bool) {
	rise, ok := ParsedTime(s.Properties.Sunrise.Time)
	if !ok {
		return 0, false
	}
	set, ok := ParsedTime(s.Properties.Sunset.Time)
	if !ok {
		return 0, false
	}
	return set.Sub(rise), true
}

// MoonProperties is the properties object of a moon document.
type MoonProperties struct {
	Body      string            `json:"body"`
	Moonrise  TimeWithAzimuth   `json:"moonrise"`
	Moonset   TimeWithAzimuth   `json:"moonset"`
	HighMoon  TimeWithElevation `json:"high_moon"`
	LowMoon   TimeWithElevation `json:"low_moon"`
	Moonphase *float64          `json:"moonphase"`
}

// MoonEvents is a decoded sunrise/3.0/moon response.
type MoonEvents struct {
	Common
	Properties MoonProperties `json:"properties"`
}

// PhaseName names the moon phase for an angle in degrees, where 0 is new
// moon, 90 first quarter, 180 full moon and 270 last quarter. It returns ""
// for NaN and infinite angles.
func PhaseName(degrees float64) string {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return ""
	}
	d := normalizeDegrees(degrees)
	switch {
	case d < 5 || d >= 355:
		return "new moon"
	case d < 85:
		return "waxing crescent"
	case d < 95:
		return "first quarter"
	case d < 175:
		return "waxing gibbous"
	case d < 185:
		return "full moon"
	case d < 265:
		return "waning gibbous"
	case d < 275:
		return "last quarter"
	default:
		return "waning crescent"
	}
}

// normalizeDegrees maps a finite angle into [0, 360).
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// DecodeSunEvents reads a sun document.
func DecodeSunEvents(r io.Reader) (*SunEvents, error) {
	var ev SunEvents
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return nil, fmt.Errorf("decoding sun events: %w", err)
	}
	if ev.Properties.Body != "" && ev.Properties.Body != BodySun {
		return nil, fmt.Errorf("decoding sun events: unexpected body %q", ev.Properties.Body)
	}
	return &ev, nil
}

// DecodeMoonEvents reads a moon document.
func DecodeMoonEvents(r io.Reader) (*MoonEvents, error) {
	var ev MoonEvents
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return nil, fmt.Errorf("decoding moon events: %w", err)
	}
	if ev.Properties.Body != "" && ev.Properties.Body != BodyMoon {
		return nil, fmt.Errorf("decoding moon events: unexpected body %q", ev.Properties.Body)
	}
	return &ev, nil
}
