// Package textforecast turns Textforecast XML documents into flat, per-period
// lists of area texts and picks the period that applies at a given moment.
package textforecast

import (
	"fmt"
	"time"

	"yrweather/internal/types"
)

// AreaText is the forecast text for one named location.
type AreaText struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Period is a time span of a text forecast and the area texts that apply in it.
type Period struct {
	From  time.Time  `json:"from"`
	To    time.Time  `json:"to"`
	Areas []AreaText `json:"areas"`
}

// Area returns the text for the location with the given name.
func (p Period) Area(name string) (AreaText, bool) {
	for _, a := range p.Areas {
		if a.Name == name {
			return a, true
		}
	}
	return AreaText{}, false
}

// Names lists the location names of the period in document order.
func (p Period) Names() []string {
	names := make([]string, 0, len(p.Areas))
	for _, a := range p.Areas {
		names = append(names, a.Name)
	}
	return names
}

// Contains reports whether ref lies within [From, To].
func (p Period) Contains(ref time.Time) bool {
	return !ref.Before(p.From) && !ref.After(p.To)
}

// The forecasttype element of a period appears either once or repeated, and
// inside each the location element likewise. Both shapes are captured once,
// at parse time, as one of the variants below.

type groupShape interface{ isGroupShape() }

type singleGroup struct{ group }

type groupList []group

func (singleGroup) isGroupShape() {}
func (groupList) isGroupShape()   {}

type group struct {
	name      string
	locations locationShape
}

type locationShape interface{ isLocationShape() }

type noLocation struct{}

type singleLocation AreaText

type locationList []AreaText

func (noLocation) isLocationShape()     {}
func (singleLocation) isLocationShape() {}
func (locationList) isLocationShape()   {}

// Normalize flattens a decoded Textforecast document (the value under the
// "textforecast" root, or the whole DecodeXML result) into periods.
//
// Marine kinds carry a single period whose groups are merged into one area
// list. All other kinds carry one or more periods, each flattened on its own.
func Normalize(doc map[string]any, kind types.TextForecastKind) ([]Period, error) {
	if !kind.Valid() {
		return nil, types.InvalidArgument("unknown text forecast kind %q", kind)
	}
	doc = unwrapRoot(doc)

	rawTime, ok := doc["time"]
	if !ok || rawTime == nil {
		return nil, malformed("document has no time element")
	}

	if kind.IsMarine() {
		m, ok := rawTime.(map[string]any)
		if !ok {
			// Tolerate a repeated time element by taking the first.
			list, isList := rawTime.([]any)
			if !isList || len(list) == 0 {
				return nil, malformed("marine forecast time: expected element, got %T", rawTime)
			}
			if m, ok = list[0].(map[string]any); !ok {
				return nil, malformed("marine forecast time: expected element, got %T", list[0])
			}
		}
		p, err := parsePeriod(m)
		if err != nil {
			return nil, err
		}
		return []Period{p}, nil
	}

	var rawPeriods []any
	switch v := rawTime.(type) {
	case []any:
		rawPeriods = v
	case map[string]any:
		rawPeriods = []any{v}
	default:
		return nil, malformed("time: expected element, got %T", rawTime)
	}

	periods := make([]Period, 0, len(rawPeriods))
	for i, raw := range rawPeriods {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, malformed("time[%d]: expected element, got %T", i, raw)
		}
		p, err := parsePeriod(m)
		if err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}

func unwrapRoot(doc map[string]any) map[string]any {
	if inner, ok := doc["textforecast"].(map[string]any); ok {
		return inner
	}
	return doc
}

func parsePeriod(m map[string]any) (Period, error) {
	from, err := parseBound(m, "from")
	if err != nil {
		return Period{}, err
	}
	to, err := parseBound(m, "to")
	if err != nil {
		return Period{}, err
	}

	shape, err := parseGroups(m["forecasttype"])
	if err != nil {
		return Period{}, err
	}

	return Period{From: from, To: to, Areas: flatten(shape)}, nil
}

func parseGroups(raw any) (groupShape, error) {
	switch v := raw.(type) {
	case nil:
		return groupList(nil), nil
	case map[string]any:
		g, err := parseGroup(v)
		if err != nil {
			return nil, err
		}
		return singleGroup{g}, nil
	case []any:
		groups := make(groupList, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, malformed("forecasttype[%d]: expected element, got %T", i, item)
			}
			g, err := parseGroup(m)
			if err != nil {
				return nil, err
			}
			groups = append(groups, g)
		}
		return groups, nil
	default:
		return nil, malformed("forecasttype: expected element, got %T", raw)
	}
}

func parseGroup(m map[string]any) (group, error) {
	name, _ := m["name"].(string)
	g := group{name: name}

	switch v := m["location"].(type) {
	case nil:
		g.locations = noLocation{}
	case map[string]any:
		g.locations = singleLocation(areaFrom(v))
	case []any:
		list := make(locationList, 0, len(v))
		for i, item := range v {
			loc, ok := item.(map[string]any)
			if !ok {
				return group{}, malformed("forecasttype %q location[%d]: expected element, got %T", name, i, item)
			}
			list = append(list, areaFrom(loc))
		}
		g.locations = list
	default:
		return group{}, malformed("forecasttype %q location: expected element, got %T", name, v)
	}
	return g, nil
}

// flatten collects every location of every group, in document order.
func flatten(shape groupShape) []AreaText {
	var groups []group
	switch s := shape.(type) {
	case singleGroup:
		groups = []group{s.group}
	case groupList:
		groups = s
	}

	areas := []AreaText{}
	for _, g := range groups {
		switch l := g.locations.(type) {
		case noLocation:
		case singleLocation:
			areas = append(areas, AreaText(l))
		case locationList:
			areas = append(areas, l...)
		}
	}
	return areas
}

func areaFrom(m map[string]any) AreaText {
	a := AreaText{}
	a.Name, _ = m["name"].(string)
	a.ID, _ = m["id"].(string)
	a.Text, _ = m[TextKey].(string)
	return a
}

func parseBound(m map[string]any, key string) (time.Time, error) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return time.Time{}, malformed("period has no %s time", key)
	}
	t, err := ParseLocalTime(s)
	if err != nil {
		return time.Time{}, malformed("period %s: %v", key, err)
	}
	return t, nil
}

func malformed(format string, args ...any) *types.AppError {
	return types.InvalidArgument("malformed text forecast: %s", fmt.Sprintf(format, args...))
}
