package region

import "github.com/kailas-cloud/georegion/internal/domain/geo"

// Solver answers the geodesic queries the generator issues.
type Solver interface {
	Direct(start geo.Point, azimuthDeg, distanceM float64) (geo.Point, error)
	Inverse(a, b geo.Point) (distanceM, azimuthDeg float64, err error)
}
