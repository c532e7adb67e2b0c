package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/domain/region"
	"github.com/kailas-cloud/georegion/internal/domain/region/mode"
	logpkg "github.com/kailas-cloud/georegion/internal/logger"
	"github.com/kailas-cloud/georegion/internal/report"
	"github.com/kailas-cloud/georegion/internal/repository/cnf"
	"github.com/kailas-cloud/georegion/internal/transport/downloader"
	forecastuc "github.com/kailas-cloud/georegion/internal/usecase/forecast"
	"github.com/kailas-cloud/georegion/internal/version"
)

const boundsPrecision = 8

func (a *app) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// commandContext returns a context carrying the logger, canceled on SIGINT/SIGTERM.
func (a *app) commandContext() (context.Context, context.CancelFunc) {
	ctx := logpkg.ContextWithLogger(context.Background(), a.logger)
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func (a *app) corners(args []string) error {
	fs := a.flagSet("corners")
	m := fs.String("mode", a.cfg.Region.DefaultMode,
		"radius interpretation: halfside, enclose-circle (same half-side as halfside), inscribe-in-circle")
	precision := fs.Int("precision", a.cfg.Region.Precision, "decimal places for lat/lon")
	asCSV := fs.Bool("csv", false, "emit CSV after the table")
	asJSON := fs.Bool("json", false, "emit JSON after the table")

	pos, err := parse(fs, args, 3, "LAT LON RADIUS_KM")
	if err != nil {
		return err
	}
	center, radiusKm, err := centerArgs(pos)
	if err != nil {
		return err
	}

	ctx, cancel := a.commandContext()
	defer cancel()

	sq, err := a.regions.Corners(ctx, center, radiusKm, mode.Mode(*m))
	if err != nil {
		return err
	}
	return report.WriteSquare(a.stdout, sq, report.Options{
		Precision: *precision,
		CSV:       *asCSV,
		JSON:      *asJSON,
	})
}

func (a *app) bounds(args []string) error {
	fs := a.flagSet("bounds")
	precision := fs.Int("precision", boundsPrecision, "decimal places for the edges")
	policy := fs.String("wrap-policy", a.cfg.Region.BoundsWrapPolicy,
		"seam-crossing boxes: reject, swap or raw")
	asJSON := fs.Bool("json", false, "emit JSON instead of text")

	pos, err := parse(fs, args, 3, "LAT LON RADIUS_KM")
	if err != nil {
		return err
	}
	center, radiusKm, err := centerArgs(pos)
	if err != nil {
		return err
	}
	wrap := region.WrapPolicy(*policy)
	if !wrap.IsValid() {
		return fmt.Errorf("%w: unknown wrap policy %q", errUsage, *policy)
	}

	ctx, cancel := a.commandContext()
	defer cancel()

	box, err := a.regions.Bounds(ctx, center, radiusKm)
	if err != nil {
		return err
	}
	if _, _, err := box.Edges(wrap); err != nil {
		return err
	}

	if *asJSON {
		return report.WriteJSON(a.stdout, report.BoundsToJSON(center, radiusKm, box))
	}
	return report.WriteBounds(a.stdout, center, radiusKm, box, *precision)
}

func (a *app) forecast(args []string) error {
	fc := a.cfg.Forecast
	fs := a.flagSet("forecast")
	startDate := fs.String("start-date", "", "UTC start, YYYY-MM-DDTHH:MM (required)")
	interval := fs.Int("interval-hours", fc.IntervalHours, "forecast interval in hours")
	caseName := fs.String("case-name", "", "case folder name (required)")
	wrfDest := fs.String("wrf-dest", "", "root folder for the downloaded tree (required)")
	geogData := fs.String("geog-data", "", "static geography data path (required)")
	resolution := fs.String("resolution", fc.Resolution, "grid resolution: 0p25 or 0p50")
	validHours := fs.String("valid-hours", fc.ValidHours, "cycle hours, pipe separated")
	parallel := fs.Int("parallel", fc.Parallel, "parallel downloads")
	cycle := fs.String("cycle", forecastuc.CycleAuto, "YYYYMMDDHH or auto (snap start to 6 h)")
	configPath := fs.String("config-path", fc.ConfigPath, "where to write the retrieval config")
	script := fs.String("download-script", fc.ScriptPath, "retrieval script to run")
	wrapPolicy := fs.String("wrap-policy", a.cfg.Region.BoundsWrapPolicy, "seam-crossing boxes: reject, swap or raw")
	dryRun := fs.Bool("dry-run", false, "write the config but skip the download")

	pos, err := parse(fs, args, 4, "LAT LON RADIUS_KM FORECAST_DAYS")
	if err != nil {
		return err
	}
	v, err := floats(pos, "LAT", "LON", "RADIUS_KM", "FORECAST_DAYS")
	if err != nil {
		return err
	}
	wrap := region.WrapPolicy(*wrapPolicy)
	if !wrap.IsValid() {
		return fmt.Errorf("%w: unknown wrap policy %q", errUsage, *wrapPolicy)
	}

	ctx, cancel := a.commandContext()
	defer cancel()

	dl := downloader.New(downloader.Config{
		ScriptPath: *script,
		Stdout:     a.stdout,
		Stderr:     a.stderr,
		Logger:     a.logger,
	})
	svc := forecastuc.New(a.regions, cnf.New(), dl).WithWrapPolicy(wrap)

	res, err := svc.Run(ctx, forecastuc.Request{
		Center:        geo.NewPoint(v[0], v[1]),
		RadiusKm:      v[2],
		ForecastDays:  v[3],
		StartDate:     *startDate,
		IntervalHours: *interval,
		CaseName:      *caseName,
		WRFDest:       *wrfDest,
		GeogData:      *geogData,
		Resolution:    *resolution,
		ValidHours:    *validHours,
		Cycle:         *cycle,
	}, forecastuc.RunOptions{
		ConfigPath: *configPath,
		Parallel:   *parallel,
		DryRun:     *dryRun,
	})
	if err != nil {
		return err
	}

	return printForecast(a.stdout, res)
}

func printForecast(w io.Writer, res forecastuc.Result) error {
	p := res.Published
	_, err := fmt.Fprintf(w,
		"Config written to %s\nCycle %s, %s to %s (%d run days)\nBox TOP=%.8f BOTTOM=%.8f LEFT=%.8f RIGHT=%.8f\nDownloaded: %t\n",
		res.ConfigPath,
		res.Plan.CycleID,
		res.Plan.Start.Format(time.RFC3339),
		res.Plan.End.Format(time.RFC3339),
		res.Plan.RunDays,
		p.Top, p.Bottom, p.Left, p.Right,
		res.Downloaded,
	)
	return err
}

func printVersion(w io.Writer) {
	_, _ = fmt.Fprintln(w, version.String())
}

// logStartup emits the canonical startup line for long-running commands.
func (a *app) logStartup(msg string, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
	}
	a.logger.Info(msg, append(base, fields...)...)
}
