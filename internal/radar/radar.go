// Package radar models the Radar 2.0 options and status documents and the
// parameters of radar and geosatellite image requests.
package radar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"time"

	"yrweather/internal/types"
)

// Fault codes reported for a radar that is not operating normally.
const (
	FaultPowerSupply = "PS"
	FaultVP          = "VP"
	FaultComms       = "CO"
	FaultTechnical   = "TE"
)

// StringList decodes a JSON value that is either a single string or an array
// of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*l = many
	return nil
}

// Availability lists where a radar product exists and in which forms.
type Availability struct {
	Areas   []types.RadarArea `json:"areas"`
	Content StringList        `json:"content"`
}

// Options maps each radar product to its availability.
type Options map[types.RadarType]Availability

// Supports reports whether the product is offered for the area and content.
func (o Options) Supports(t types.RadarType, area types.RadarArea, content types.RadarContent) bool {
	a, ok := o[t]
	if !ok {
		return false
	}
	return slices.Contains(a.Areas, area) && slices.Contains([]string(a.Content), string(content))
}

// DecodeOptions reads a radaroptions document.
func DecodeOptions(r io.Reader) (Options, error) {
	var o Options
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return nil, fmt.Errorf("decoding radar options: %w", err)
	}
	return o, nil
}

// Status is the operating state of one radar site.
type Status struct {
	Area      string            `json:"area"`
	DueDate   *string           `json:"due_date"`
	FaultCode *string           `json:"fault_code"`
	Last      string            `json:"last"`
	Products  []types.RadarArea `json:"products"`
	SiteName  string            `json:"sitename"`
	Stability string            `json:"stability"`
}

// Faulty reports whether the site has an active fault.
func (s Status) Faulty() bool {
	return s.FaultCode != nil && *s.FaultCode != ""
}

// GlobalStatus is the status of every radar site.
type GlobalStatus struct {
	LastUpdate string   `json:"last_update"`
	Radars     []Status `json:"radars"`
}

// ByArea returns the status of the radar covering area.
func (g GlobalStatus) ByArea(area string) (Status, bool) {
	for _, s := range g.Radars {
		if strings.EqualFold(s.Area, area) {
			return s, true
		}
	}
	return Status{}, false
}

// BySiteName returns the status of the named radar site.
func (g GlobalStatus) BySiteName(name string) (Status, bool) {
	for _, s := range g.Radars {
		if strings.EqualFold(s.SiteName, name) {
			return s, true
		}
	}
	return Status{}, false
}

// Lookup matches key against area first, then site name.
func (g GlobalStatus) Lookup(key string) (Status, bool) {
	if s, ok := g.ByArea(key); ok {
		return s, true
	}
	return g.BySiteName(key)
}

// Faults returns the sites with an active fault, in document order.
func (g GlobalStatus) Faults() []Status {
	var out []Status
	for _, s := range g.Radars {
		if s.Faulty() {
			out = append(out, s)
		}
	}
	return out
}

// DecodeStatus reads a status document.
func DecodeStatus(r io.Reader) (*GlobalStatus, error) {
	var g GlobalStatus
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decoding radar status: %w", err)
	}
	return &g, nil
}

// ImageRequest selects a radar image or animation.
type ImageRequest struct {
	Area    types.RadarArea    `validate:"required,radar_area"`
	Type    types.RadarType    `validate:"required,radar_type"`
	Content types.RadarContent `validate:"omitempty,radar_content"`

	// Time picks a historical image; zero means latest.
	Time time.Time
}

// Query encodes the request parameters.
func (r ImageRequest) Query() url.Values {
	q := url.Values{}
	q.Set("area", string(r.Area))
	q.Set("type", string(r.Type))
	content := r.Content
	if content == "" {
		content = types.RadarImage
	}
	q.Set("content", string(content))
	if !r.Time.IsZero() {
		q.Set("time", r.Time.UTC().Format(types.TimestampLayout))
	}
	return q
}

// SatelliteRequest selects a geosatellite image.
type SatelliteRequest struct {
	Area types.SatelliteArea      `validate:"omitempty,satellite_area"`
	Type types.SatelliteImageType `validate:"omitempty,satellite_type"`
	Size types.SatelliteSize      `validate:"omitempty,satellite_size"`

	// Time picks a historical image; zero means latest.
	Time time.Time
}

// Query encodes the request parameters, filling the API defaults
// (europe, infrared, normal) for empty fields.
func (r SatelliteRequest) Query() url.Values {
	q := url.Values{}
	q.Set("area", string(defaultTo(r.Area, "europe")))
	q.Set("type", string(defaultTo(r.Type, types.SatelliteInfrared)))
	q.Set("size", string(defaultTo(r.Size, types.SatelliteNormal)))
	if !r.Time.IsZero() {
		q.Set("time", r.Time.UTC().Format(types.TimestampLayout))
	}
	return q
}

func defaultTo[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}
