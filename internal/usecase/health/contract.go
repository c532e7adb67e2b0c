package health

import "github.com/kailas-cloud/georegion/internal/domain/geo"

// Solver is the geodesic solver probed by the self-check.
type Solver interface {
	Direct(start geo.Point, azimuthDeg, distanceM float64) (geo.Point, error)
}

// ScriptChecker reports whether the forecast download script is runnable.
type ScriptChecker interface {
	Check() error
}
