package mode

import "math"

// Mode is the interpretation of a radius when building a square.
type Mode string

// Radius interpretation constants.
//
// HalfSide and EncloseCircle yield the same geometry. HalfSide says the radius
// is the half-side; EncloseCircle says the radius belongs to a circle the square
// must contain, which needs a half-side equal to that radius. Both labels are kept.
const (
	HalfSide Mode = "halfside"
	// EncloseCircle: square fully contains the circle of the given radius.
	EncloseCircle Mode = "enclose-circle"
	// InscribeInCircle: square corners lie on the circle of the given radius.
	InscribeInCircle Mode = "inscribe-in-circle"
)

// Default is the mode used when none is given.
const Default = HalfSide

// All lists the supported modes.
func All() []Mode {
	return []Mode{HalfSide, EncloseCircle, InscribeInCircle}
}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == HalfSide || m == EncloseCircle || m == InscribeInCircle
}

// HalfSideKm returns the square half-side for a radius under this mode.
// The result for an invalid mode is NaN.
func (m Mode) HalfSideKm(radiusKm float64) float64 {
	switch m {
	case HalfSide, EncloseCircle:
		return radiusKm
	case InscribeInCircle:
		return radiusKm / math.Sqrt2
	default:
		return math.NaN()
	}
}
