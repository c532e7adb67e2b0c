// Package forecast turns a center/radius/time window into the key-value
// configuration consumed by the meteorological data retrieval script.
package forecast

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/georegion/internal/domain"
	"github.com/kailas-cloud/georegion/internal/domain/geo"
)

// Time layouts used on input and in the written config.
const (
	StartDateLayout = "2006-01-02T15:04"
	CycleLayout     = "2006010215"
	wrfDateLayout   = "2006-01-02_15:04:05"
)

// CycleAuto snaps the start date down to the previous 6-hour model cycle.
const CycleAuto = "auto"

const cycleStepHours = 6

// MaxForecastDays is the GFS forecast horizon (384 h).
const MaxForecastDays = 16

// Supported GFS grid resolutions.
var resolutions = map[string]struct{}{"0p25": {}, "0p50": {}}

var validHoursRe = regexp.MustCompile(`^\d{2}(\|\d{2})*$`)

// Request holds the user inputs of a forecast retrieval.
type Request struct {
	Center        geo.Point
	RadiusKm      float64
	ForecastDays  float64
	StartDate     string
	IntervalHours int
	CaseName      string
	WRFDest       string
	GeogData      string
	Resolution    string
	ValidHours    string
	Cycle         string
}

// Plan is a validated, fully derived retrieval plan.
type Plan struct {
	Request
	Start     time.Time
	End       time.Time
	CycleID   string
	Intervals []string
	RunDays   int
}

// Validate checks the request fields that do not depend on geometry.
func (r Request) Validate() error {
	switch {
	case !(r.ForecastDays > 0) || math.IsInf(r.ForecastDays, 0):
		return fmt.Errorf("%w: forecast_days must be positive, got %g", domain.ErrInvalidForecast, r.ForecastDays)
	case r.ForecastDays > MaxForecastDays:
		return fmt.Errorf("%w: forecast_days must be at most %d, got %g",
			domain.ErrInvalidForecast, MaxForecastDays, r.ForecastDays)
	case r.IntervalHours <= 0:
		return fmt.Errorf("%w: interval_hours must be positive, got %d", domain.ErrInvalidForecast, r.IntervalHours)
	case strings.TrimSpace(r.CaseName) == "":
		return fmt.Errorf("%w: case name is required", domain.ErrInvalidForecast)
	case strings.TrimSpace(r.WRFDest) == "":
		return fmt.Errorf("%w: wrf destination is required", domain.ErrInvalidForecast)
	case strings.TrimSpace(r.GeogData) == "":
		return fmt.Errorf("%w: geog data path is required", domain.ErrInvalidForecast)
	case !validHoursRe.MatchString(r.ValidHours):
		return fmt.Errorf("%w: valid hours %q must look like 00|06|12|18", domain.ErrInvalidForecast, r.ValidHours)
	}
	if _, ok := resolutions[r.Resolution]; !ok {
		return fmt.Errorf("%w: resolution %q must be 0p25 or 0p50", domain.ErrInvalidForecast, r.Resolution)
	}
	return nil
}

// NewPlan validates the request and derives cycle, end date and intervals.
func NewPlan(r Request) (Plan, error) {
	if err := r.Validate(); err != nil {
		return Plan{}, err
	}

	start, err := time.Parse(StartDateLayout, r.StartDate)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: start date %q must be YYYY-MM-DDTHH:MM: %w", domain.ErrInvalidForecast, r.StartDate, err)
	}

	cycle, err := ResolveCycle(r.Cycle, start)
	if err != nil {
		return Plan{}, err
	}

	end := SnapEnd(start, r.ForecastDays, time.Duration(r.IntervalHours)*time.Hour)

	return Plan{
		Request:   r,
		Start:     start,
		End:       end,
		CycleID:   cycle,
		Intervals: Intervals(r.ForecastDays, r.IntervalHours),
		RunDays:   int(end.Sub(start) / (24 * time.Hour)),
	}, nil
}

// ResolveCycle returns the cycle id: explicit YYYYMMDDHH, or the start snapped to 6 h.
func ResolveCycle(cycle string, start time.Time) (string, error) {
	if cycle == "" || cycle == CycleAuto {
		snapped := start.Add(-time.Duration(start.Hour()%cycleStepHours) * time.Hour)
		return snapped.Format(CycleLayout), nil
	}
	if _, err := time.Parse(CycleLayout, cycle); err != nil {
		return "", fmt.Errorf("%w: cycle %q must be YYYYMMDDHH or auto", domain.ErrInvalidForecast, cycle)
	}
	return cycle, nil
}

// Intervals returns the forecast hour range "0 <step> <total>", where total is
// the forecast length in hours rounded, then floored to a multiple of step.
func Intervals(days float64, stepHours int) []string {
	total := int(math.RoundToEven(days * 24))
	total -= total % stepHours
	return []string{fmt.Sprintf("0 %d %d", stepHours, total)}
}

// SnapEnd returns start+days rounded down to a whole number of intervals.
func SnapEnd(start time.Time, days float64, interval time.Duration) time.Time {
	span := time.Duration(days * 24 * float64(time.Hour))
	return start.Add(span - span%interval)
}

// Bounds are the published box edges, already resolved by the wrap policy.
type Bounds struct {
	Top, Bottom, Left, Right float64
}

// Fields renders the plan and box as ordered config fields.
func (p Plan) Fields(b Bounds) []domain.ConfigField {
	f8 := func(v float64) string { return strconv.FormatFloat(v, 'f', 8, 64) }
	f6 := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	two := func(v int) string { return fmt.Sprintf("%02d", v) }
	kv := func(k, v string) domain.ConfigField { return domain.ConfigField{Key: k, Value: v} }

	quoted := make([]string, len(p.Intervals))
	for i, s := range p.Intervals {
		quoted[i] = strconv.Quote(s)
	}

	return []domain.ConfigField{
		kv("FOLDER_NAME", p.CaseName),
		kv("TOP", f8(b.Top)),
		kv("BOTTOM", f8(b.Bottom)),
		kv("LEFT", f8(b.Left)),
		kv("RIGHT", f8(b.Right)),
		kv("INTERVALS", "(" + strings.Join(quoted, " ") + ")"),
		kv("RESOLUTION", p.Resolution),
		kv("VALID_HOURS", `"` + p.ValidHours + `"`),
		kv("WRF_DEST", p.WRFDest),
		kv("CENTER_LAT", f6(p.Center.Lat)),
		kv("CENTER_LON", f6(p.Center.Lon)),
		kv("RADIUS_KM", strconv.Itoa(int(math.RoundToEven(p.RadiusKm)))),
		kv("START_DATE", p.Start.Format(wrfDateLayout)),
		kv("END_DATE", p.End.Format(wrfDateLayout)),
		kv("RUN_DAYS", strconv.Itoa(p.RunDays)),
		kv("START_YEAR", strconv.Itoa(p.Start.Year())),
		kv("START_MONTH", two(int(p.Start.Month()))),
		kv("START_DAY", two(p.Start.Day())),
		kv("START_HOUR", two(p.Start.Hour())),
		kv("END_YEAR", strconv.Itoa(p.End.Year())),
		kv("END_MONTH", two(int(p.End.Month()))),
		kv("END_DAY", two(p.End.Day())),
		kv("END_HOUR", two(p.End.Hour())),
		kv("FORECAST_DAYS", formatDays(p.ForecastDays)),
		kv("GEOG_DATA_PATH", `"` + p.GeogData + `"`),
		kv("CASE_NAME", `"` + p.CaseName + `"`),
		kv("CYCLE", p.CycleID),
	}
}

// formatDays renders the shortest decimal that round-trips, switching to
// exponent form below 1e-4 or from 1e16 up, and keeps a trailing ".0" on
// whole numbers so downstream scripts always see a float.
func formatDays(d float64) string {
	if a := math.Abs(d); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(d, 'g', -1, 64)
	}
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
