package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidWrapPolicy(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.Region.BoundsWrapPolicy = "split"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid wrap policy")
	}

	expected := `region.bounds_wrap_policy must be "reject", "swap" or "raw", got "split"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidWrapPolicies(t *testing.T) {
	for _, policy := range []string{"reject", "swap", "raw"} {
		t.Run("policy="+policy, func(t *testing.T) {
			cfg := Config{}
			cfg.ApplyDefaults()
			cfg.Region.BoundsWrapPolicy = policy

			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid policy %q: %v", policy, err)
			}
		})
	}
}

func TestValidate_InvalidMode(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.Region.DefaultMode = "circle"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid mode")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_InvalidResolutionAndPrecision(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	cfg.Forecast.Resolution = "1p00"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid resolution")
	}

	cfg = Config{}
	cfg.ApplyDefaults()
	cfg.Region.Precision = 13
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for precision above 12")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected timeouts %+v", cfg.HTTP)
	}
	if cfg.Region.DefaultMode != "halfside" {
		t.Errorf("expected DefaultMode=halfside, got %q", cfg.Region.DefaultMode)
	}
	if cfg.Region.Precision != 7 {
		t.Errorf("expected Precision=7, got %d", cfg.Region.Precision)
	}
	if cfg.Region.BoundsWrapPolicy != "reject" {
		t.Errorf("expected BoundsWrapPolicy=reject, got %q", cfg.Region.BoundsWrapPolicy)
	}
	if cfg.Region.MaxRadiusKm != 5000 {
		t.Errorf("expected MaxRadiusKm=5000, got %f", cfg.Region.MaxRadiusKm)
	}
	if cfg.Forecast.IntervalHours != 3 || cfg.Forecast.Parallel != 24 {
		t.Errorf("unexpected forecast defaults %+v", cfg.Forecast)
	}
	if cfg.Forecast.ValidHours != "00|06|12|18" || cfg.Forecast.Resolution != "0p25" {
		t.Errorf("unexpected forecast defaults %+v", cfg.Forecast)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 9090, ReadTimeoutSec: 30},
		Region:   RegionConfig{DefaultMode: "inscribe-in-circle", Precision: 4, BoundsWrapPolicy: "raw"},
		Forecast: ForecastConfig{Parallel: 4, ScriptPath: "/opt/dl.sh"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 9090 || cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("http overridden: %+v", cfg.HTTP)
	}
	if cfg.Region.DefaultMode != "inscribe-in-circle" || cfg.Region.Precision != 4 || cfg.Region.BoundsWrapPolicy != "raw" {
		t.Errorf("region overridden: %+v", cfg.Region)
	}
	if cfg.Forecast.Parallel != 4 || cfg.Forecast.ScriptPath != "/opt/dl.sh" {
		t.Errorf("forecast overridden: %+v", cfg.Forecast)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("GEOREGION_TEST_KEY", "secret")

	got := string(expandEnvVars([]byte("a: ${GEOREGION_TEST_KEY}\nb: ${GEOREGION_UNSET_KEY:-fallback}\nc: ${GEOREGION_UNSET_KEY}")))
	want := "a: secret\nb: fallback\nc: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "http:\n  port: 9999\nregion:\n  default_mode: enclose-circle\n  bounds_wrap_policy: ${GEOREGION_WRAP:-swap}\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 9999 || cfg.Region.DefaultMode != "enclose-circle" || cfg.Region.BoundsWrapPolicy != "swap" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Forecast.Parallel != 24 {
		t.Errorf("defaults not applied: %+v", cfg.Forecast)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("no-such-env")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTP.Port != 8080 || cfg.Region.DefaultMode != "halfside" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "broken.yaml"), []byte("http: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	if _, err := Load("broken"); err == nil {
		t.Fatal("expected parse error")
	}
}
