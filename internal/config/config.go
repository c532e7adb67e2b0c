package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/georegion/internal/domain/region"
	"github.com/kailas-cloud/georegion/internal/domain/region/mode"
)

// Config holds the georegion configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Region   RegionConfig   `yaml:"region"`
	Forecast ForecastConfig `yaml:"forecast"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	MaxBatchSize    int `yaml:"max_batch_size"`
}

// RegionConfig holds region generator settings.
type RegionConfig struct {
	DefaultMode      string  `yaml:"default_mode"`       // halfside, enclose-circle, inscribe-in-circle
	Precision        int     `yaml:"precision"`          // lat/lon decimals in reports
	BoundsWrapPolicy string  `yaml:"bounds_wrap_policy"` // reject, swap, raw
	BatchConcurrency int     `yaml:"batch_concurrency"`
	MaxRadiusKm      float64 `yaml:"max_radius_km"`
}

// ForecastConfig holds defaults for the forecast retrieval command.
type ForecastConfig struct {
	ConfigPath    string `yaml:"config_path"`
	ScriptPath    string `yaml:"script_path"`
	Resolution    string `yaml:"resolution"`
	ValidHours    string `yaml:"valid_hours"`
	IntervalHours int    `yaml:"interval_hours"`
	Parallel      int    `yaml:"parallel"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A missing file yields the defaults.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	var cfg Config
	data, err := os.ReadFile(filepath.Clean(configPath))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	default:
		// Substitute env variables of the form ${VAR}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBatchSize <= 0 {
		c.HTTP.MaxBatchSize = 1000
	}
	if c.Region.DefaultMode == "" {
		c.Region.DefaultMode = string(mode.Default)
	}
	if c.Region.Precision <= 0 {
		c.Region.Precision = 7
	}
	if c.Region.BoundsWrapPolicy == "" {
		c.Region.BoundsWrapPolicy = string(region.WrapReject)
	}
	if c.Region.BatchConcurrency <= 0 {
		c.Region.BatchConcurrency = 8
	}
	if c.Region.MaxRadiusKm <= 0 {
		c.Region.MaxRadiusKm = 5000
	}
	if c.Forecast.ConfigPath == "" {
		c.Forecast.ConfigPath = "gfs.cnf"
	}
	if c.Forecast.ScriptPath == "" {
		c.Forecast.ScriptPath = "./download_met_gfs.sh"
	}
	if c.Forecast.Resolution == "" {
		c.Forecast.Resolution = "0p25"
	}
	if c.Forecast.ValidHours == "" {
		c.Forecast.ValidHours = "00|06|12|18"
	}
	if c.Forecast.IntervalHours <= 0 {
		c.Forecast.IntervalHours = 3
	}
	if c.Forecast.Parallel <= 0 {
		c.Forecast.Parallel = 24
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if !mode.Mode(c.Region.DefaultMode).IsValid() {
		return fmt.Errorf(
			"region.default_mode must be one of halfside, enclose-circle, inscribe-in-circle, got %q",
			c.Region.DefaultMode,
		)
	}
	if !region.WrapPolicy(c.Region.BoundsWrapPolicy).IsValid() {
		return fmt.Errorf(
			"region.bounds_wrap_policy must be \"reject\", \"swap\" or \"raw\", got %q",
			c.Region.BoundsWrapPolicy,
		)
	}
	if c.Region.Precision > 12 {
		return fmt.Errorf("region.precision must be at most 12, got %d", c.Region.Precision)
	}
	switch c.Forecast.Resolution {
	case "0p25", "0p50":
		// ok
	default:
		return fmt.Errorf("forecast.resolution must be \"0p25\" or \"0p50\", got %q", c.Forecast.Resolution)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
