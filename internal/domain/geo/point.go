package geo

import "math"

// Point is an immutable WGS84 position in degrees.
// Longitude may hold any finite value; NormalizeLon brings it to (-180, 180].
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewPoint creates a point from latitude/longitude in degrees.
func NewPoint(lat, lon float64) Point {
	return Point{Lat: lat, Lon: lon}
}

// Normalized returns the point with longitude in (-180, 180].
func (p Point) Normalized() Point {
	return Point{Lat: p.Lat, Lon: NormalizeLon(p.Lon)}
}

// Valid reports whether the point is finite with latitude in [-90, 90].
func (p Point) Valid() bool {
	return ValidateCoordinates(p.Lat, p.Lon)
}

// ValidateCoordinates checks that latitude is in [-90,90] and both values are finite.
// Longitude is unbounded; it is treated modulo 360.
func ValidateCoordinates(lat, lon float64) bool {
	if !finite(lat) || !finite(lon) {
		return false
	}
	return lat >= -90 && lat <= 90
}

// NormalizeLon maps a longitude in degrees to (-180, 180].
func NormalizeLon(lon float64) float64 {
	x := math.Mod(lon, 360)
	if x <= -180 {
		x += 360
	} else if x > 180 {
		x -= 360
	}
	return x
}

// Norm360 maps a longitude in degrees to [0, 360).
func Norm360(lon float64) float64 {
	x := math.Mod(math.Mod(lon, 360)+360, 360)
	// -tiny + 360 rounds to 360 before the outer Mod in some cases
	if x >= 360 {
		return 0
	}
	return x
}

// BearingFromOffset returns the azimuth in [0, 360) of a local east/north offset.
// 0 is north, 90 is east: the bearing is atan2(east, north).
func BearingFromOffset(eastKm, northKm float64) float64 {
	deg := math.Atan2(eastKm, northKm) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
