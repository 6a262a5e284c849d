package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"yrweather/internal/external"
	"yrweather/internal/forecast"
	"yrweather/internal/radar"
	"yrweather/internal/sunrise"
	"yrweather/internal/types"
)

// maxConcurrentLocations bounds the forecast fan-out so a long --loc list
// does not flood api.met.no.
const maxConcurrentLocations = 4

// defaultListSpan is the window listed when --to is not set.
const defaultListSpan = 24 * time.Hour

type forecastResult struct {
	Location  location         `json:"location"`
	UpdatedAt string           `json:"updated_at,omitempty"`
	Entry     *forecast.Entry  `json:"entry,omitempty"`
	Entries   []forecast.Entry `json:"entries,omitempty"`
	// Found is false when --at names an hour the forecast does not cover,
	// or when --from/--to select no entry.
	Found bool `json:"found"`
}

func runForecast(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "forecast")
	var locs locationList
	var at, from, to timeFlag
	var altitude optionalInt
	fs.Var(&locs, "loc", "location as lat,lon (repeatable)")
	fs.Var(&at, "at", "resolve this instant instead of now (RFC 3339)")
	fs.Var(&from, "from", "list entries from this instant (RFC 3339, default now)")
	fs.Var(&to, "to", "list entries up to this instant (RFC 3339, default from + 24h)")
	fs.Var(&altitude, "altitude", "ground height in meters")
	kind := fs.String("kind", string(types.ForecastComplete), "complete or compact")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if len(locs) == 0 {
		return fmt.Errorf("forecast: at least one --loc is required")
	}
	listing := !from.IsZero() || !to.IsZero()
	if listing && !at.IsZero() {
		return fmt.Errorf("forecast: --at cannot be combined with --from or --to")
	}
	if listing {
		if from.IsZero() {
			from.Time = env.now()
		}
		if to.IsZero() {
			to.Time = from.Add(defaultListSpan)
		}
		if to.Before(from.Time) {
			return fmt.Errorf("forecast: --to is before --from")
		}
	}

	results := make([]forecastResult, len(locs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLocations)
	for i, loc := range locs {
		g.Go(func() error {
			series, err := env.clients.Locationforecast.Forecast(gctx, external.ForecastParams{
				Lat:      loc.Lat,
				Lon:      loc.Lon,
				Kind:     types.ForecastKind(*kind),
				Altitude: altitude.v,
			})
			if err != nil {
				return fmt.Errorf("forecast for %g,%g: %w", loc.Lat, loc.Lon, err)
			}

			res := forecastResult{Location: loc, UpdatedAt: series.UpdatedAt}
			switch {
			case listing:
				res.Entries = series.Between(from.Time, to.Time)
				res.Found = len(res.Entries) > 0
			case at.IsZero():
				e := series.Now()
				res.Entry, res.Found = &e, true
			default:
				e, ok, err := series.At(at.Time)
				if err != nil {
					return err
				}
				if ok {
					res.Entry = &e
				}
				res.Found = ok
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return env.writeJSON(results)
}

func runTextforecast(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "textforecast")
	kind := fs.String("kind", string(types.TextLandOverview), "landoverview, coast_en, coast_no, sea_en, sea_no or sea_wmo")
	all := fs.Bool("all", false, "print every period instead of the current one")
	area := fs.String("area", "", "print only the text for this area name")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	f, err := env.clients.Textforecast.Forecasts(ctx, types.TextForecastKind(*kind))
	if err != nil {
		return err
	}
	if *all {
		return env.writeJSON(f)
	}

	period, err := f.Now()
	if err != nil {
		return err
	}
	if *area == "" {
		return env.writeJSON(period)
	}
	text, ok := period.Area(*area)
	if !ok {
		return fmt.Errorf("textforecast: no area %q in the current period (have %v)", *area, period.Names())
	}
	return env.writeJSON(text)
}

func runAreas(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "areas")
	areaType := fs.String("type", string(types.TextAreaLand), "land, sea or coast")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	areas, err := env.clients.Textforecast.Areas(ctx, types.TextAreaType(*areaType))
	if err != nil {
		return err
	}
	return env.writeJSON(areas)
}

// sunriseParams reads the flags shared by sun and moon. Without --date the
// current local day and offset are used.
func sunriseParams(env *cliEnv, name string, args []string) (sunrise.Params, error) {
	fs := newFlagSet(env, name)
	loc := fs.String("loc", "", "location as lat,lon")
	date := fs.String("date", "", "local date, YYYY-MM-DD (default today)")
	offset := fs.String("offset", "", "UTC offset of returned times, e.g. +02:00")
	if err := fs.Parse(args); err != nil {
		return sunrise.Params{}, errUsage
	}
	if *loc == "" {
		return sunrise.Params{}, fmt.Errorf("%s: --loc is required", name)
	}
	l, err := parseLocation(*loc)
	if err != nil {
		return sunrise.Params{}, err
	}

	params := sunrise.ParamsFor(env.now(), l.Lat, l.Lon)
	if *date != "" {
		params.Date = *date
	}
	if *offset != "" {
		params.Offset = *offset
	}
	return params, nil
}

func runSun(ctx context.Context, env *cliEnv, args []string) error {
	params, err := sunriseParams(env, "sun", args)
	if err != nil {
		return err
	}
	ev, err := env.clients.Sunrise.SunEvents(ctx, params)
	if err != nil {
		return err
	}

	out := struct {
		*sunrise.SunEvents
		DayLength string `json:"day_length,omitempty"`
	}{SunEvents: ev}
	if d, ok := ev.DayLength(); ok {
		out.DayLength = d.String()
	}
	return env.writeJSON(out)
}

func runMoon(ctx context.Context, env *cliEnv, args []string) error {
	params, err := sunriseParams(env, "moon", args)
	if err != nil {
		return err
	}
	ev, err := env.clients.Sunrise.MoonEvents(ctx, params)
	if err != nil {
		return err
	}

	out := struct {
		*sunrise.MoonEvents
		PhaseName string `json:"phase_name,omitempty"`
	}{MoonEvents: ev}
	if ev.Properties.Moonphase != nil {
		out.PhaseName = sunrise.PhaseName(*ev.Properties.Moonphase)
	}
	return env.writeJSON(out)
}

func runRadar(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "radar")
	area := fs.String("area", "", "radar area, e.g. southern_norway")
	radarType := fs.String("type", string(types.RadarReflectivity), "radar product type")
	content := fs.String("content", "", "image or animation (default image)")
	var at timeFlag
	fs.Var(&at, "time", "historical image time (RFC 3339)")
	out := fs.String("o", "-", "output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	img, err := env.clients.Radar.Image(ctx, radar.ImageRequest{
		Area:    types.RadarArea(*area),
		Type:    types.RadarType(*radarType),
		Content: types.RadarContent(*content),
		Time:    at.Time,
	})
	if err != nil {
		return err
	}
	return env.saveImage(img, *out)
}

func runRadarStatus(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "radar-status")
	key := fs.String("key", "", "radar area or site name (default all)")
	faulty := fs.Bool("faulty", false, "list only radars reporting a fault")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if *key != "" {
		st, ok, err := env.clients.Radar.Status(ctx, *key)
		if err != nil {
			return err
		}
		if !ok {
			return types.NewAppErrorWithDetails(types.ErrCodeNotFoundRadar,
				fmt.Sprintf("no radar with area or site name %q", *key), nil,
				map[string]any{"key": *key})
		}
		return env.writeJSON(st)
	}

	all, err := env.clients.Radar.AllStatuses(ctx)
	if err != nil {
		return err
	}
	if *faulty {
		return env.writeJSON(all.Faults())
	}
	return env.writeJSON(all)
}

func runSatellite(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "satellite")
	area := fs.String("area", "", "satellite area (default europe)")
	imageType := fs.String("type", "", "image type (default infrared)")
	size := fs.String("size", "", "normal or small (default normal)")
	var at timeFlag
	fs.Var(&at, "time", "historical image time (RFC 3339)")
	out := fs.String("o", "-", "output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	img, err := env.clients.Geosatellite.Image(ctx, radar.SatelliteRequest{
		Area: types.SatelliteArea(*area),
		Type: types.SatelliteImageType(*imageType),
		Size: types.SatelliteSize(*size),
		Time: at.Time,
	})
	if err != nil {
		return err
	}
	return env.saveImage(img, *out)
}

func runUnits(ctx context.Context, env *cliEnv, args []string) error {
	fs := newFlagSet(env, "units")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	units, err := env.clients.Locationforecast.Units(ctx)
	if err != nil {
		return err
	}
	return env.writeJSON(units)
}

// saveImage streams an image to path, or to stdout for "-".
func (e *cliEnv) saveImage(img *external.Image, path string) (err error) {
	defer img.Close()

	var w io.Writer = e.stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	n, err := io.Copy(w, img)
	if err != nil {
		return fmt.Errorf("writing image: %w", err)
	}
	e.logger.Info("image saved", "path", path, "bytes", n, "content_type", img.ContentType)
	return nil
}
