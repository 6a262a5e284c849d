// Package main implements the yrweather command line client for api.met.no.
//
// Usage:
//
//	yrweather forecast --loc 59.91,10.75 --loc 60.39,5.32
//	yrweather forecast --loc 59.91,10.75 --at 2024-05-17T12:00:00Z --kind compact
//	yrweather forecast --loc 59.91,10.75 --from 2024-05-17T06:00:00Z --to 2024-05-17T18:00:00Z
//	yrweather textforecast --kind landoverview
//	yrweather areas --type coast
//	yrweather sun --loc 69.65,18.96 --date 2024-06-21
//	yrweather moon --loc 69.65,18.96
//	yrweather radar --area southern_norway --type reflectivity -o radar.png
//	yrweather radar-status --key hurum
//	yrweather satellite --area europe --type infrared -o sat.png
//	yrweather units
//
// Configuration is read from the environment (or a .env file) like the API
// server; YR_USER_AGENT is required. Results are written to stdout as JSON and
// logs go to stderr.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"yrweather/internal/config"
	"yrweather/internal/external"
)

// command is one yrweather subcommand.
type command struct {
	summary string
	run     func(ctx context.Context, env *cliEnv, args []string) error
}

var commands = map[string]command{
	"forecast":     {"Resolve or list forecast entries for one or more locations", runForecast},
	"textforecast": {"Print the current period of a text forecast", runTextforecast},
	"areas":        {"List text forecast areas of one type", runAreas},
	"sun":          {"Print sunrise, sunset and day length", runSun},
	"moon":         {"Print moonrise, moonset and moon phase", runMoon},
	"radar":        {"Download a radar image or animation", runRadar},
	"radar-status": {"Print radar site status", runRadarStatus},
	"satellite":    {"Download a geosatellite image", runSatellite},
	"units":        {"Print the units used by Locationforecast", runUnits},
}

// cliEnv carries what every subcommand needs.
type cliEnv struct {
	clients *external.ClientRegistry
	logger  *slog.Logger
	stdout  io.Writer
	stderr  io.Writer
}

// clock is the time source for default dates. Tests replace it.
var clock = time.Now

func (e *cliEnv) now() time.Time { return clock() }

// errUsage marks a command line error; usage has already been printed.
var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "yrweather: %v\n", err)
		}
		os.Exit(1)
	}
}

// run parses global flags, builds the client registry and dispatches to the
// named subcommand.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...external.RegistryOption) error {
	global := flag.NewFlagSet("yrweather", flag.ContinueOnError)
	global.SetOutput(stderr)
	envFile := global.String("env-file", "", "load configuration from this .env file")
	noCache := global.Bool("no-cache", false, "bypass the on-disk response cache")
	verbose := global.Bool("v", false, "log requests at debug level")
	global.Usage = func() { printUsage(global) }

	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() == 0 {
		printUsage(global)
		return errUsage
	}

	name := global.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", name)
		printUsage(global)
		return errUsage
	}

	var dotenv []string
	if *envFile != "" {
		dotenv = append(dotenv, *envFile)
	}
	cfg, err := config.LoadConfig(dotenv...)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if *noCache {
		cfg.Cache.Enabled = false
	}

	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	logger := newLogger(stderr, level)

	clients, err := external.NewClientRegistry(cfg, logger, opts...)
	if err != nil {
		return err
	}
	defer clients.Close()

	env := &cliEnv{clients: clients, logger: logger, stdout: stdout, stderr: stderr}
	return cmd.run(ctx, env, global.Args()[1:])
}

func printUsage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "Usage: yrweather [global flags] <command> [flags]")
	fmt.Fprintln(out, "\nCommands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-14s %s\n", name, commands[name].summary)
	}

	fmt.Fprintln(out, "\nGlobal flags:")
	fs.PrintDefaults()
}

// writeJSON prints v as indented JSON.
func (e *cliEnv) writeJSON(v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newLogger creates a structured slog.Logger writing JSON to w.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
