package region

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/georegion/internal/domain"
	"github.com/kailas-cloud/georegion/internal/domain/geo"
	domregion "github.com/kailas-cloud/georegion/internal/domain/region"
	"github.com/kailas-cloud/georegion/internal/domain/region/mode"
	"github.com/kailas-cloud/georegion/internal/logger"
	"github.com/kailas-cloud/georegion/internal/metrics"
)

// Defaults for a Service built with New.
const (
	DefaultMaxRadiusKm      = 5000.0
	DefaultBatchConcurrency = 8
)

// Cardinal probe azimuths for bounding boxes.
const (
	azimuthNorth = 0.0
	azimuthEast  = 90.0
	azimuthSouth = 180.0
	azimuthWest  = 270.0
)

// Service generates squares and bounding boxes around a center.
// It holds no state between calls and is safe for concurrent use.
type Service struct {
	solver      Solver
	maxRadiusKm float64
	concurrency int
}

// New creates a region service on top of a geodesic solver.
func New(solver Solver) *Service {
	return &Service{
		solver:      solver,
		maxRadiusKm: DefaultMaxRadiusKm,
		concurrency: DefaultBatchConcurrency,
	}
}

// WithMaxRadius sets the largest accepted radius. Non-positive values keep the default.
func (s *Service) WithMaxRadius(km float64) *Service {
	if km > 0 {
		s.maxRadiusKm = km
	}
	return s
}

// WithConcurrency sets how many batch items are computed at once.
func (s *Service) WithConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// Corners computes the four corners of a square around center in the order
// NW, NE, SE, SW. The radius is interpreted according to m.
func (s *Service) Corners(ctx context.Context, center geo.Point, radiusKm float64, m mode.Mode) (sq domregion.Square, err error) {
	defer observe("corners", time.Now(), &err)

	if !m.IsValid() {
		return domregion.Square{}, fmt.Errorf("%w: %q", domain.ErrInvalidMode, m)
	}
	if err := s.validate(center, radiusKm); err != nil {
		return domregion.Square{}, err
	}

	h := m.HalfSideKm(radiusKm)
	sq = domregion.Square{
		Center:     center,
		Mode:       m,
		RadiusKm:   radiusKm,
		HalfSideKm: h,
	}

	for i, off := range domregion.SquareOffsets(h) {
		name := domregion.CornerOrder[i]
		bearing := off.Bearing()
		distKm := off.DistanceKm()

		p, err := s.solver.Direct(center, bearing, distKm*1000)
		if err != nil {
			return domregion.Square{}, fmt.Errorf("corner %s: %w", name, err)
		}

		sq.Corners[i] = domregion.Corner{
			Name:       name,
			Offset:     off,
			BearingDeg: bearing,
			DistanceKm: distKm,
			Point:      p,
		}
	}

	logger.FromContext(ctx).Debug("square computed",
		zap.Float64("lat", center.Lat),
		zap.Float64("lon", center.Lon),
		zap.Float64("radius_km", radiusKm),
		zap.String("mode", string(m)),
	)

	return sq, nil
}

// Bounds computes a lat/lon box from four cardinal probes at radiusKm.
// Radii that reach a pole are rejected with domain.ErrPoleInside.
func (s *Service) Bounds(ctx context.Context, center geo.Point, radiusKm float64) (b domregion.BoundingBox, err error) {
	defer observe("bounds", time.Now(), &err)

	if err := s.validate(center, radiusKm); err != nil {
		return domregion.BoundingBox{}, err
	}
	if err := s.checkPoles(center, radiusKm*1000); err != nil {
		return domregion.BoundingBox{}, err
	}

	probe := func(name string, azimuth float64) (geo.Point, error) {
		p, err := s.solver.Direct(center, azimuth, radiusKm*1000)
		if err != nil {
			return geo.Point{}, fmt.Errorf("%s probe: %w", name, err)
		}
		return p, nil
	}

	north, err := probe("north", azimuthNorth)
	if err != nil {
		return domregion.BoundingBox{}, err
	}
	south, err := probe("south", azimuthSouth)
	if err != nil {
		return domregion.BoundingBox{}, err
	}
	east, err := probe("east", azimuthEast)
	if err != nil {
		return domregion.BoundingBox{}, err
	}
	west, err := probe("west", azimuthWest)
	if err != nil {
		return domregion.BoundingBox{}, err
	}

	b = domregion.NewBoundingBox(north, south, east, west)

	log := logger.FromContext(ctx)
	if b.Wrapped {
		log.Warn("bounding box crosses the 0/360 seam",
			zap.Float64("west", b.West()),
			zap.Float64("east", b.East()),
		)
	}
	log.Debug("bounds computed",
		zap.Float64("top", b.Top),
		zap.Float64("bottom", b.Bottom),
		zap.Float64("left", b.Left),
		zap.Float64("right", b.Right),
	)

	return b, nil
}

func (s *Service) validate(center geo.Point, radiusKm float64) error {
	if !center.Valid() {
		return fmt.Errorf("%w: lat=%g lon=%g", domain.ErrInvalidCoordinates, center.Lat, center.Lon)
	}
	switch {
	case math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0):
		return fmt.Errorf("%w: non-finite", domain.ErrInvalidRadius)
	case radiusKm < 0:
		return fmt.Errorf("%w: %g km is negative", domain.ErrInvalidRadius, radiusKm)
	case radiusKm > s.maxRadiusKm:
		return fmt.Errorf("%w: %g km exceeds %g km", domain.ErrInvalidRadius, radiusKm, s.maxRadiusKm)
	}
	return nil
}

// checkPoles rejects radii that reach either pole along the center meridian.
func (s *Service) checkPoles(center geo.Point, radiusM float64) error {
	if radiusM == 0 {
		return nil
	}
	for _, poleLat := range []float64{90, -90} {
		d, _, err := s.solver.Inverse(center, geo.NewPoint(poleLat, center.Lon))
		if err != nil {
			return fmt.Errorf("pole distance: %w", err)
		}
		if d <= radiusM {
			return fmt.Errorf("%w: pole %+g is %.0f m away, radius %.0f m", domain.ErrPoleInside, poleLat, d, radiusM)
		}
	}
	return nil
}

func observe(kind string, start time.Time, errp *error) {
	metrics.RegionComputeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if errp != nil && *errp != nil {
		metrics.RegionErrorsTotal.WithLabelValues(kind, errorType(*errp)).Inc()
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidMode):
		return "invalid_mode"
	case errors.Is(err, domain.ErrInvalidRadius):
		return "invalid_radius"
	case errors.Is(err, domain.ErrInvalidCoordinates):
		return "invalid_coordinates"
	case errors.Is(err, domain.ErrPoleInside):
		return "pole_inside"
	case errors.Is(err, domain.ErrGeodesic):
		return "geodesic"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
