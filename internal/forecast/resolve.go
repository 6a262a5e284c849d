package forecast

import (
	"time"

	"yrweather/internal/types"
)

// RoundToNearestHour converts t to UTC and rounds it to the closest whole
// hour. Minutes 30 and above round up, carrying into the next day, month or
// year as needed. Seconds and sub-seconds are dropped before rounding.
func RoundToNearestHour(t time.Time) time.Time {
	t = t.UTC()
	hour := t.Truncate(time.Hour)
	if t.Minute() >= 30 {
		return hour.Add(time.Hour)
	}
	return hour
}

// FormatTimestamp renders t in the series timestamp form, e.g.
// 2023-10-12T09:00:00Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(types.TimestampLayout)
}

// Now returns the entry for the current hour, or the first entry of the
// series when the current hour is not covered. On a zero Series it returns
// the zero Entry.
func (s *Series) Now() Entry {
	now := s.now
	if now == nil {
		now = time.Now
	}
	if e, ok := s.lookup(FormatTimestamp(RoundToNearestHour(now()))); ok {
		return e
	}
	if len(s.entries) == 0 {
		return Entry{}
	}
	return s.entries[0]
}

// At returns the entry for the hour nearest to t. ok is false when the series
// has no entry for that hour; there is no fallback.
func (s *Series) At(t time.Time) (Entry, bool, error) {
	if t.IsZero() {
		return Entry{}, false, types.NewAppError(types.ErrCodeValidationInvalidTime,
			"time must be set", nil)
	}
	e, ok := s.lookup(FormatTimestamp(RoundToNearestHour(t)))
	return e, ok, nil
}
