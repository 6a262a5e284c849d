package handlers

import (
	"net/url"
	"strconv"
	"time"

	"yrweather/internal/types"
)

// parseLatLon reads the required lat and lon query parameters. Range checks
// are left to the clients, which validate before any network call.
func parseLatLon(q url.Values) (lat, lon float64, err error) {
	lat, err = parseCoordinate(q, "lat", types.ErrCodeValidationInvalidLat)
	if err != nil {
		return 0, 0, err
	}
	lon, err = parseCoordinate(q, "lon", types.ErrCodeValidationInvalidLon)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func parseCoordinate(q url.Values, name string, code types.ErrorCode) (float64, error) {
	s := q.Get(name)
	if s == "" {
		return 0, types.NewAppError(types.ErrCodeValidationMissingField,
			name+" query parameter is required", nil)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, types.NewAppError(code, name+" must be a valid number", nil)
	}
	return v, nil
}

// parseOptionalInt returns nil when the parameter is absent.
func parseOptionalInt(q url.Values, name string) (*int, error) {
	s := q.Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, types.InvalidArgument("%s must be a whole number", name)
	}
	return &v, nil
}

// parseTime reads a required RFC 3339 timestamp.
func parseTime(q url.Values, name string) (time.Time, error) {
	s := q.Get(name)
	if s == "" {
		return time.Time{}, types.NewAppError(types.ErrCodeValidationMissingField,
			name+" query parameter is required", nil)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, types.NewAppError(types.ErrCodeValidationInvalidTime,
			name+" must be a valid RFC3339 timestamp", nil)
	}
	return t, nil
}
