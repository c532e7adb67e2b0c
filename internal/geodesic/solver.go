// Package geodesic solves the direct and inverse geodesic problems on the
// WGS84 ellipsoid using Karney's algorithm (github.com/tidwall/geodesic).
package geodesic

import (
	"math"

	"github.com/tidwall/geodesic"

	"github.com/kailas-cloud/georegion/internal/domain"
	"github.com/kailas-cloud/georegion/internal/domain/geo"
)

// WGS84 ellipsoid parameters.
const (
	EquatorialRadiusMeters = 6378137.0
	Flattening             = 1 / 298.257223563
)

// Solver solves geodesic problems. Implementations must be stateless between
// calls and safe for concurrent use.
type Solver interface {
	// Direct returns the point reached from start after distanceM meters on
	// the initial azimuth (degrees clockwise from north).
	Direct(start geo.Point, azimuthDeg, distanceM float64) (geo.Point, error)
	// Inverse returns the geodesic distance (meters) and initial azimuth from a to b.
	Inverse(a, b geo.Point) (distanceM, azimuthDeg float64, err error)
}

// Ellipsoid is a Solver backed by an ellipsoidal Karney solve.
type Ellipsoid struct {
	e *geodesic.Ellipsoid
}

var _ Solver = (*Ellipsoid)(nil)

// NewWGS84 creates a solver for the WGS84 ellipsoid.
func NewWGS84() *Ellipsoid {
	return &Ellipsoid{e: geodesic.NewEllipsoid(EquatorialRadiusMeters, Flattening)}
}

// Direct solves the direct problem. The returned longitude is in (-180, 180].
// A zero distance returns the start point as is.
func (s *Ellipsoid) Direct(start geo.Point, azimuthDeg, distanceM float64) (geo.Point, error) {
	fail := func(reason string) (geo.Point, error) {
		return geo.Point{}, domain.NewGeodesicError(start.Lat, start.Lon, azimuthDeg, distanceM, reason)
	}

	switch {
	case !start.Valid():
		return fail("start point out of range or non-finite")
	case !finite(azimuthDeg):
		return fail("non-finite azimuth")
	case !finite(distanceM):
		return fail("non-finite distance")
	case distanceM < 0:
		return fail("negative distance")
	}

	if distanceM == 0 {
		return start.Normalized(), nil
	}

	var lat2, lon2 float64
	s.e.Direct(start.Lat, geo.NormalizeLon(start.Lon), azimuthDeg, distanceM, &lat2, &lon2, nil)
	if !finite(lat2) || !finite(lon2) {
		return fail("solver did not converge")
	}

	return geo.Point{Lat: lat2, Lon: geo.NormalizeLon(lon2)}, nil
}

// Inverse solves the inverse problem. The azimuth is in [0, 360).
func (s *Ellipsoid) Inverse(a, b geo.Point) (float64, float64, error) {
	if !a.Valid() || !b.Valid() {
		return 0, 0, &domain.GeodesicError{
			Op: "inverse", Lat: a.Lat, Lon: a.Lon, Reason: "point out of range or non-finite",
		}
	}

	var s12, azi1 float64
	s.e.Inverse(a.Lat, geo.NormalizeLon(a.Lon), b.Lat, geo.NormalizeLon(b.Lon), &s12, &azi1, nil)
	if !finite(s12) || !finite(azi1) {
		return 0, 0, &domain.GeodesicError{
			Op: "inverse", Lat: a.Lat, Lon: a.Lon, Reason: "solver did not converge",
		}
	}

	return s12, geo.Norm360(azi1), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
