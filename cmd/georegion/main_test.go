package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/georegion/internal/report"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("ENV", "local")
	t.Setenv("GEOREGION_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	if code, _, errOut := runCLI(t); code != exitUsage || !strings.Contains(errOut, "Usage:") {
		t.Errorf("no args: code=%d stderr=%q", code, errOut)
	}
	if code, _, _ := runCLI(t, "triangles"); code != exitUsage {
		t.Errorf("unknown command: code=%d", code)
	}
	if code, out, _ := runCLI(t, "help"); code != exitOK || !strings.Contains(out, "corners") {
		t.Errorf("help: code=%d", code)
	}
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != exitOK || !strings.HasPrefix(out, "georegion dev") {
		t.Errorf("code=%d out=%q", code, out)
	}
}

func TestRun_Corners(t *testing.T) {
	code, out, errOut := runCLI(t, "corners", "53.5461", "-113.4938", "25", "--mode", "enclose-circle", "--json")
	if code != exitOK {
		t.Fatalf("code=%d stderr=%s", code, errOut)
	}
	for _, want := range []string{
		"Mode           : enclose-circle",
		"Half-side (km) : 25.000  |  Side length: 50.000 km  |  Diagonal: 70.711 km",
		`"mode": "enclose-circle"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRun_CornersErrors(t *testing.T) {
	if code, _, _ := runCLI(t, "corners", "0", "0"); code != exitUsage {
		t.Errorf("missing radius: code=%d", code)
	}
	if code, _, _ := runCLI(t, "corners", "0", "0", "10", "--mode", "circle"); code != exitError {
		t.Errorf("invalid mode: code=%d", code)
	}
	if code, _, _ := runCLI(t, "corners", "0", "0", "-10"); code != exitError {
		t.Errorf("negative radius: code=%d", code)
	}
}

func TestRun_BoundsWrapPolicy(t *testing.T) {
	code, _, errOut := runCLI(t, "bounds", "0", "0.1", "50")
	if code != exitError || !strings.Contains(errOut, "seam") {
		t.Errorf("reject policy: code=%d stderr=%q", code, errOut)
	}

	code, out, _ := runCLI(t, "bounds", "0", "0.1", "50", "--wrap-policy", "swap")
	if code != exitOK || !strings.Contains(out, "WRAPPED") {
		t.Errorf("swap policy: code=%d out=%q", code, out)
	}

	code, out, _ = runCLI(t, "bounds", "53.5461", "-113.4938", "25", "--json")
	if code != exitOK {
		t.Fatalf("json: code=%d", code)
	}
	var b report.BoundsJSON
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if b.Wrapped || b.Top <= b.Bottom || b.Left > b.Right {
		t.Errorf("unexpected box %+v", b)
	}
}

func TestRun_ForecastDryRun(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "gfs.cnf")
	code, out, errOut := runCLI(t, "forecast", "53.5461", "-113.4938", "25", "2",
		"--start-date", "2024-01-01T03:00",
		"--case-name", "edmonton",
		"--wrf-dest", "/data/wrf",
		"--geog-data", "/data/geog",
		"--config-path", cfgPath,
		"--dry-run",
	)
	if code != exitOK {
		t.Fatalf("code=%d stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "Downloaded: false") {
		t.Errorf("unexpected output %q", out)
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"FOLDER_NAME=edmonton", "CYCLE=2024010100", "RUN_DAYS=2", "TOP="} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config missing %q\n%s", want, data)
		}
	}
}

func TestRun_ForecastMissingRequired(t *testing.T) {
	code, _, _ := runCLI(t, "forecast", "0", "10", "25", "2", "--dry-run",
		"--config-path", filepath.Join(t.TempDir(), "gfs.cnf"))
	if code != exitError {
		t.Errorf("code=%d", code)
	}
}

func TestRouter_Corners(t *testing.T) {
	t.Setenv("ENV", "local")
	a, err := newApp(&bytes.Buffer{}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	a.cfg.Auth.APIKeys = nil

	rr := httptest.NewRecorder()
	a.router().ServeHTTP(rr, httptest.NewRequest("GET", "/v1/corners?lat=0&lon=0&radius_km=100", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestJSONRecoverer(t *testing.T) {
	h := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/corners", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["code"] != "internal_error" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestHasKeys(t *testing.T) {
	if hasKeys(nil) || hasKeys([]string{""}) {
		t.Error("empty keys reported as enabled")
	}
	if !hasKeys([]string{"", "k"}) {
		t.Error("non-empty key not detected")
	}
}
