package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrGeodesic signals a failed or rejected ellipsoidal solve.
	ErrGeodesic = errors.New("geodesic solve failed")
	// ErrInvalidMode signals an unknown radius interpretation mode.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidRadius signals a negative, non-finite or oversized radius.
	ErrInvalidRadius = errors.New("invalid radius")
	// ErrInvalidCoordinates signals a center outside the valid lat/lon range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrPoleInside signals a bounding box whose radius reaches a pole.
	ErrPoleInside = errors.New("pole inside radius")
	// ErrBoundsWrap signals a bounding box crossing the 0/360 longitude seam.
	ErrBoundsWrap = errors.New("bounding box crosses longitude seam")
	// ErrInvalidForecast signals invalid forecast retrieval parameters.
	ErrInvalidForecast = errors.New("invalid forecast request")
)

// GeodesicError wraps ErrGeodesic with the inputs of the failed solve.
type GeodesicError struct {
	Op       string
	Lat      float64
	Lon      float64
	Azimuth  float64
	Distance float64
	Reason   string
}

func (e *GeodesicError) Error() string {
	return fmt.Sprintf("%s: %s(lat=%g lon=%g azi=%g dist=%g): %s",
		ErrGeodesic.Error(), e.Op, e.Lat, e.Lon, e.Azimuth, e.Distance, e.Reason)
}

func (e *GeodesicError) Unwrap() error { return ErrGeodesic }

// NewGeodesicError creates a geodesic error for a direct solve.
func NewGeodesicError(lat, lon, azimuth, distance float64, reason string) error {
	return &GeodesicError{Op: "direct", Lat: lat, Lon: lon, Azimuth: azimuth, Distance: distance, Reason: reason}
}
