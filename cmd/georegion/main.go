package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/georegion/internal/config"
	"github.com/kailas-cloud/georegion/internal/geodesic"
	logpkg "github.com/kailas-cloud/georegion/internal/logger"
	"github.com/kailas-cloud/georegion/internal/metrics"
	regionuc "github.com/kailas-cloud/georegion/internal/usecase/region"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `Usage: georegion <command> [flags] [args]

Commands:
  corners  LAT LON RADIUS_KM                 square corners around a center
  bounds   LAT LON RADIUS_KM                 lat/lon bounding box from cardinal probes
  forecast LAT LON RADIUS_KM FORECAST_DAYS   write retrieval config and download forecast data
  serve                                      run the HTTP API
  version                                    print build information

Run 'georegion <command> --help' for command flags.
`

// errUsage marks argument errors that exit with exitUsage.
var errUsage = errors.New("usage error")

// app carries the shared dependencies of every command.
type app struct {
	env     string
	cfg     config.Config
	logger  *zap.Logger
	regions *regionuc.Service
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		_, _ = fmt.Fprint(stdout, usage)
		return exitOK
	case "version", "--version":
		printVersion(stdout)
		return exitOK
	}

	a, err := newApp(stdout, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "georegion: %v\n", err)
		return exitError
	}
	defer func() { _ = a.logger.Sync() }()

	switch cmd {
	case "corners":
		err = a.corners(rest)
	case "bounds":
		err = a.bounds(rest)
	case "forecast":
		err = a.forecast(rest)
	case "serve":
		err = a.serve(rest)
	default:
		_, _ = fmt.Fprintf(stderr, "georegion: unknown command %q\n\n%s", cmd, usage)
		return exitUsage
	}

	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		_, _ = fmt.Fprintf(stderr, "georegion %s: %v\n", cmd, err)
		return exitUsage
	default:
		a.logger.Error("Command failed", zap.String("command", cmd), zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "georegion %s: %v\n", cmd, err)
		return exitError
	}
}

func newApp(stdout, stderr io.Writer) (*app, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	// Register metrics explicitly (no init())
	metrics.Register()

	solver := geodesic.NewInstrumented(geodesic.NewWGS84())
	regions := regionuc.New(solver).
		WithMaxRadius(cfg.Region.MaxRadiusKm).
		WithConcurrency(cfg.Region.BatchConcurrency)

	return &app{
		env:     env,
		cfg:     cfg,
		logger:  logger,
		regions: regions,
		stdout:  stdout,
		stderr:  stderr,
	}, nil
}
