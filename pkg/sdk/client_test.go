package georegion

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	sq, err := c.Corners(context.Background(), 0, 0, 100, HalfSide)
	if err != nil {
		t.Fatal(err)
	}
	ne := sq.Corners[1]
	if ne.Name != "NE" || math.Abs(ne.BearingDeg-45) > 1e-9 || math.Abs(ne.DistanceKm-100*math.Sqrt2) > 1e-9 {
		t.Errorf("unexpected NE corner %+v", ne)
	}
	if ne.Point.Lat <= 0 || ne.Point.Lon <= 0 {
		t.Errorf("NE corner should be in the positive quadrant: %+v", ne.Point)
	}
}

func TestCorners_HalfSideMatchesEncloseCircle(t *testing.T) {
	c, _ := New()
	a, err := c.Corners(context.Background(), 53.5461, -113.4938, 25, HalfSide)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Corners(context.Background(), 53.5461, -113.4938, 25, EncloseCircle)
	if err != nil {
		t.Fatal(err)
	}
	if a.Corners != b.Corners {
		t.Error("halfside and enclose-circle corners differ")
	}
}

func TestWithMaxRadius(t *testing.T) {
	c, _ := New(WithMaxRadius(10))
	if _, err := c.Corners(context.Background(), 0, 0, 11, HalfSide); !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("expected ErrInvalidRadius, got %v", err)
	}
}

func TestBounds_SeamWrapped(t *testing.T) {
	c, _ := New()
	b, err := c.Bounds(context.Background(), 0, 0.1, 50)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Wrapped || b.Left > b.Right || len(b.Segments()) != 2 {
		t.Errorf("unexpected box %+v", b)
	}
	if _, _, err := b.Edges(WrapReject); !errors.Is(err, ErrBoundsWrap) {
		t.Errorf("expected ErrBoundsWrap, got %v", err)
	}
}

func TestCornersBatch(t *testing.T) {
	c, _ := New(WithConcurrency(2))
	centers := []Point{{Lat: 0, Lon: 0}, {Lat: 10, Lon: 10}, {Lat: -10, Lon: -170}}
	out, err := c.CornersBatch(context.Background(), centers, 5, InscribeInCircle)
	if err != nil {
		t.Fatal(err)
	}
	for i, sq := range out {
		if sq.Center != centers[i] {
			t.Errorf("result %d has center %v", i, sq.Center)
		}
	}
}

func TestCornersBatch_ItemError(t *testing.T) {
	c, _ := New()
	centers := []Point{{Lat: 0, Lon: 0}, {Lat: 91, Lon: 0}}
	_, err := c.CornersBatch(context.Background(), centers, 5, HalfSide)
	var ie *BatchItemError
	if !errors.As(err, &ie) || ie.Index != 1 {
		t.Fatalf("expected BatchItemError at 1, got %v", err)
	}
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestWithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(WithPrometheus(reg))
	if err != nil {
		t.Fatal(err)
	}

	_, _ = c.Corners(context.Background(), 0, 0, 1, HalfSide)
	_, _ = c.Corners(context.Background(), 0, 0, 1, "bogus")

	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("corners", "ok")); got != 1 {
		t.Errorf("ok count = %f", got)
	}
	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("corners", "rejected")); got != 1 {
		t.Errorf("rejected count = %f", got)
	}

	// A second client on the same registry reuses the collectors.
	if _, err := New(WithPrometheus(reg)); err != nil {
		t.Fatalf("second client: %v", err)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, _ := New(WithLogger(l))

	_, _ = c.Bounds(context.Background(), 89.9, 0, 50)
	out := buf.String()
	if !strings.Contains(out, "operation failed") || !strings.Contains(out, "op=bounds") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestStatus(t *testing.T) {
	if status(nil) != "ok" || status(ErrPoleInside) != "rejected" || status(&GeodesicError{}) != "solver_error" {
		t.Error("unexpected status mapping")
	}
}
