// Package forecast parses Locationforecast payloads into typed entries and
// resolves the entry that applies at a given hour.
//
// Everything in this package is pure: no I/O, no logging, no shared state.
// A Series is read-only once built and may be used from any goroutine.
package forecast

import (
	"time"

	"yrweather/internal/types"
)

// Series is an ordered, read-only Locationforecast time series together with
// the document metadata that came with it. Build one with NewSeries; the zero
// value holds no entries.
type Series struct {
	Type      string
	Geometry  Geometry
	UpdatedAt string
	Units     Units

	entries []Entry
	index   map[string]int
	skipped int
	now     func() time.Time
}

// SeriesOption configures a Series.
type SeriesOption func(*Series)

// WithClock overrides the clock used by Now. Intended for tests.
func WithClock(now func() time.Time) SeriesOption {
	return func(s *Series) {
		s.now = now
	}
}

// NewSeries builds a Series from a decoded Locationforecast document
// ({"type", "geometry", "properties": {"meta", "timeseries"}}).
//
// Every entry is parsed up front. A malformed entry is left out of the series
// and counted by Skipped; it never fails its neighbours. A series with no
// usable entry is rejected so that Now always has an answer.
func NewSeries(doc map[string]any, opts ...SeriesOption) (*Series, error) {
	s := &Series{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if t, ok := doc["type"].(string); ok {
		s.Type = t
	}

	geometry, ok, err := mapField(doc, "geometry")
	if err != nil {
		return nil, malformed("%v", err)
	}
	if ok {
		if s.Geometry, err = projectGeometry(geometry); err != nil {
			return nil, malformed("geometry: %v", err)
		}
	}

	props, ok, err := mapField(doc, "properties")
	if err != nil || !ok {
		return nil, malformed("document has no properties")
	}

	meta, ok, err := mapField(props, "meta")
	if err != nil {
		return nil, malformed("%v", err)
	}
	if ok {
		if updated, ok := meta["updated_at"].(string); ok {
			s.UpdatedAt = updated
		}
		units, ok, err := mapField(meta, "units")
		if err != nil {
			return nil, malformed("meta: %v", err)
		}
		if ok {
			if s.Units, err = projectUnits(units); err != nil {
				return nil, malformed("units: %v", err)
			}
		}
	}

	rawSeries, ok := props["timeseries"].([]any)
	if !ok {
		return nil, malformed("document has no timeseries")
	}

	raws := make([]map[string]any, 0, len(rawSeries))
	for i, v := range rawSeries {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, malformed("timeseries[%d]: expected object, got %T", i, v)
		}
		raws = append(raws, m)
	}

	if err := s.load(raws); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Series) load(raws []map[string]any) error {
	if len(raws) == 0 {
		return types.InvalidArgument("forecast time series is empty")
	}

	s.entries = make([]Entry, 0, len(raws))
	s.index = make(map[string]int, len(raws))
	var firstErr error
	for _, raw := range raws {
		entry, err := ParseEntry(raw)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.skipped++
			continue
		}
		// Keep the first occurrence of a duplicated timestamp.
		if _, dup := s.index[entry.Time]; !dup {
			s.index[entry.Time] = len(s.entries)
		}
		s.entries = append(s.entries, entry)
	}
	if len(s.entries) == 0 {
		return firstErr
	}
	return nil
}

// Len returns the number of entries.
func (s *Series) Len() int {
	return len(s.entries)
}

// Skipped returns the number of malformed entries left out of the series.
func (s *Series) Skipped() int {
	return s.skipped
}

// Entries returns a copy of the entries in document order.
func (s *Series) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Between returns the entries whose time lies in [from, to], in document
// order. Entries with an unparseable time are skipped.
func (s *Series) Between(from, to time.Time) []Entry {
	var out []Entry
	for _, e := range s.entries {
		t, err := e.ParsedTime()
		if err != nil {
			continue
		}
		if t.Before(from) || t.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *Series) lookup(timestamp string) (Entry, bool) {
	i, ok := s.index[timestamp]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}
