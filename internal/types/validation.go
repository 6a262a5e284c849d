package types

import (
	"regexp"
	"strconv"
)

// Timestamp layouts used by api.met.no.
const (
	// TimestampLayout is the UTC, second-precision form used in forecast
	// time series and radar/satellite time parameters.
	TimestampLayout = "2006-01-02T15:04:05Z"
	// DateLayout is the calendar date form accepted by the Sunrise API.
	DateLayout = "2006-01-02"
)

// offsetPattern matches UTC offsets of the form +HH:MM or -HH:MM.
var offsetPattern = regexp.MustCompile(`^[+-](\d{2}):(\d{2})$`)

// IsUTCOffset reports whether s is a valid +HH:MM / -HH:MM offset.
func IsUTCOffset(s string) bool {
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours <= 18 && minutes < 60
}
