package forecast

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/georegion/internal/domain"
	"github.com/kailas-cloud/georegion/internal/domain/geo"
)

func validRequest() Request {
	return Request{
		Center:        geo.NewPoint(53.5461, -113.4938),
		RadiusKm:      250.4,
		ForecastDays:  2.3,
		StartDate:     "2025-08-04T14:30",
		IntervalHours: 6,
		CaseName:      "edmonton run",
		WRFDest:       "/data/met",
		GeogData:      "/data/geog",
		Resolution:    "0p25",
		ValidHours:    "00|06|12|18",
		Cycle:         CycleAuto,
	}
}

func TestIntervals(t *testing.T) {
	tests := []struct {
		days float64
		step int
		want string
	}{
		{10, 3, "0 3 240"},
		{2.3, 6, "0 6 54"},
		{0.5, 5, "0 5 10"},
		{1, 1, "0 1 24"},
	}
	for _, tt := range tests {
		got := Intervals(tt.days, tt.step)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("Intervals(%g, %d) = %v, want [%s]", tt.days, tt.step, got, tt.want)
		}
	}
}

func TestSnapEnd(t *testing.T) {
	start := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		days     float64
		interval time.Duration
		want     time.Time
	}{
		{2.3, 6 * time.Hour, time.Date(2025, 8, 6, 6, 0, 0, 0, time.UTC)},
		{1, 3 * time.Hour, time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)},
		{0.1, 3 * time.Hour, start},
	}
	for _, tt := range tests {
		if got := SnapEnd(start, tt.days, tt.interval); !got.Equal(tt.want) {
			t.Errorf("SnapEnd(%g, %s) = %s, want %s", tt.days, tt.interval, got, tt.want)
		}
	}
}

func TestResolveCycle(t *testing.T) {
	start := time.Date(2025, 8, 4, 14, 30, 0, 0, time.UTC)

	got, err := ResolveCycle(CycleAuto, start)
	if err != nil || got != "2025080412" {
		t.Errorf("auto: %q %v", got, err)
	}
	got, err = ResolveCycle("", start)
	if err != nil || got != "2025080412" {
		t.Errorf("empty: %q %v", got, err)
	}
	got, err = ResolveCycle("2025080300", start)
	if err != nil || got != "2025080300" {
		t.Errorf("explicit: %q %v", got, err)
	}
	if _, err := ResolveCycle("2025-08-03", start); !errors.Is(err, domain.ErrInvalidForecast) {
		t.Errorf("expected ErrInvalidForecast, got %v", err)
	}
}

func TestNewPlan(t *testing.T) {
	p, err := NewPlan(validRequest())
	if err != nil {
		t.Fatal(err)
	}
	if p.CycleID != "2025080412" {
		t.Errorf("cycle = %s", p.CycleID)
	}
	wantEnd := time.Date(2025, 8, 6, 20, 30, 0, 0, time.UTC)
	if !p.End.Equal(wantEnd) {
		t.Errorf("end = %s, want %s", p.End, wantEnd)
	}
	if p.RunDays != 2 {
		t.Errorf("run days = %d", p.RunDays)
	}
	if p.Intervals[0] != "0 6 54" {
		t.Errorf("intervals = %v", p.Intervals)
	}
}

func TestNewPlan_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"zero days", func(r *Request) { r.ForecastDays = 0 }},
		{"days past horizon", func(r *Request) { r.ForecastDays = MaxForecastDays + 0.5 }},
		{"days overflow duration", func(r *Request) { r.ForecastDays = 200000 }},
		{"zero interval", func(r *Request) { r.IntervalHours = 0 }},
		{"no case", func(r *Request) { r.CaseName = " " }},
		{"no wrf dest", func(r *Request) { r.WRFDest = "" }},
		{"no geog", func(r *Request) { r.GeogData = "" }},
		{"bad resolution", func(r *Request) { r.Resolution = "1p00" }},
		{"bad valid hours", func(r *Request) { r.ValidHours = "0,6" }},
		{"bad start", func(r *Request) { r.StartDate = "2025-08-04 14:30" }},
		{"bad cycle", func(r *Request) { r.Cycle = "yesterday" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)
			if _, err := NewPlan(r); !errors.Is(err, domain.ErrInvalidForecast) {
				t.Fatalf("expected ErrInvalidForecast, got %v", err)
			}
		})
	}
}

func TestNewPlan_FullHorizon(t *testing.T) {
	r := validRequest()
	r.ForecastDays = MaxForecastDays
	p, err := NewPlan(r)
	if err != nil {
		t.Fatal(err)
	}
	if p.RunDays != MaxForecastDays {
		t.Errorf("RunDays = %d, want %d", p.RunDays, MaxForecastDays)
	}
	if !p.End.After(p.Start) {
		t.Errorf("end %v not after start %v", p.End, p.Start)
	}
}

func TestPlan_Fields(t *testing.T) {
	p, err := NewPlan(validRequest())
	if err != nil {
		t.Fatal(err)
	}
	fields := p.Fields(Bounds{Top: 55.79, Bottom: 51.29, Left: 242.7, Right: 250.3})

	want := []struct{ key, value string }{
		{"FOLDER_NAME", "edmonton run"},
		{"TOP", "55.79000000"},
		{"BOTTOM", "51.29000000"},
		{"LEFT", "242.70000000"},
		{"RIGHT", "250.30000000"},
		{"INTERVALS", `("0 6 54")`},
		{"RESOLUTION", "0p25"},
		{"VALID_HOURS", `"00|06|12|18"`},
		{"WRF_DEST", "/data/met"},
		{"CENTER_LAT", "53.546100"},
		{"CENTER_LON", "-113.493800"},
		{"RADIUS_KM", "250"},
		{"START_DATE", "2025-08-04_14:30:00"},
		{"END_DATE", "2025-08-06_20:30:00"},
		{"RUN_DAYS", "2"},
		{"START_YEAR", "2025"},
		{"START_MONTH", "08"},
		{"START_DAY", "04"},
		{"START_HOUR", "14"},
		{"END_YEAR", "2025"},
		{"END_MONTH", "08"},
		{"END_DAY", "06"},
		{"END_HOUR", "20"},
		{"FORECAST_DAYS", "2.3"},
		{"GEOG_DATA_PATH", `"/data/geog"`},
		{"CASE_NAME", `"edmonton run"`},
		{"CYCLE", "2025080412"},
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, w := range want {
		if fields[i].Key != w.key || fields[i].Value != w.value {
			t.Errorf("field %d = %s=%s, want %s=%s", i, fields[i].Key, fields[i].Value, w.key, w.value)
		}
	}
}

func TestFormatDays(t *testing.T) {
	tests := map[float64]string{
		10:     "10.0",
		2:      "2.0",
		2.5:    "2.5",
		0.25:   "0.25",
		0.0001: "0.0001",
		1e-05:  "1e-05",
		2.5e-7: "2.5e-07",
		1e16:   "1e+16",
	}
	for in, want := range tests {
		if got := formatDays(in); got != want {
			t.Errorf("formatDays(%g) = %q, want %q", in, got, want)
		}
	}
}
