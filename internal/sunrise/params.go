package sunrise

import (
	"net/url"
	"strconv"
	"time"

	"yrweather/internal/types"
)

// Params are the query parameters shared by the sun and moon endpoints.
type Params struct {
	// Date is the local calendar date, YYYY-MM-DD.
	Date string  `validate:"required,datetime=2006-01-02"`
	Lat  float64 `validate:"latitude"`
	Lon  float64 `validate:"longitude"`

	// Offset is the UTC offset of the returned times, +HH:MM or -HH:MM.
	// Empty lets the API use UTC.
	Offset string `validate:"omitempty,utcoffset"`
}

// ParamsFor builds Params for the calendar day of t in t's own zone, with
// the matching offset.
func ParamsFor(t time.Time, lat, lon float64) Params {
	return Params{
		Date:   t.Format(types.DateLayout),
		Lat:    lat,
		Lon:    lon,
		Offset: FormatOffset(t),
	}
}

// FormatOffset renders the UTC offset of t as +HH:MM or -HH:MM.
func FormatOffset(t time.Time) string {
	return t.Format("-07:00")
}

// Query encodes the parameters for the request URL.
func (p Params) Query() url.Values {
	q := url.Values{}
	q.Set("date", p.Date)
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Lon, 'f', -1, 64))
	if p.Offset != "" {
		q.Set("offset", p.Offset)
	}
	return q
}
