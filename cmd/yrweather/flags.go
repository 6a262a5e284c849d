package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// location is a lat,lon pair given on the command line.
type location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func parseLocation(s string) (location, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return location{}, fmt.Errorf("location %q: want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return location{}, fmt.Errorf("location %q: bad latitude", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return location{}, fmt.Errorf("location %q: bad longitude", s)
	}
	return location{Lat: lat, Lon: lon}, nil
}

// locationList is a repeatable --loc flag.
type locationList []location

func (l *locationList) String() string {
	parts := make([]string, len(*l))
	for i, loc := range *l {
		parts[i] = fmt.Sprintf("%g,%g", loc.Lat, loc.Lon)
	}
	return strings.Join(parts, " ")
}

func (l *locationList) Set(s string) error {
	loc, err := parseLocation(s)
	if err != nil {
		return err
	}
	*l = append(*l, loc)
	return nil
}

// timeFlag is an optional RFC 3339 timestamp.
type timeFlag struct{ time.Time }

func (t *timeFlag) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func (t *timeFlag) Set(s string) error {
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("want an RFC 3339 timestamp such as 2024-05-17T12:00:00Z")
	}
	t.Time = parsed
	return nil
}

// optionalInt records whether the flag was given at all.
type optionalInt struct{ v *int }

func (o *optionalInt) String() string {
	if o.v == nil {
		return ""
	}
	return strconv.Itoa(*o.v)
}

func (o *optionalInt) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("want a whole number")
	}
	o.v = &n
	return nil
}

// newFlagSet returns a subcommand flag set that reports errors instead of
// exiting.
func newFlagSet(env *cliEnv, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	return fs
}
