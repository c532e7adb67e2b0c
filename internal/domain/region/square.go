// Package region holds the value types produced by the region generator:
// square corners around a center and cardinal-probe bounding boxes.
package region

import (
	"math"

	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/domain/region/mode"
)

// CornerName identifies a square corner.
type CornerName string

// Corner names in emission order.
const (
	NW CornerName = "NW"
	NE CornerName = "NE"
	SE CornerName = "SE"
	SW CornerName = "SW"
)

// CornerOrder is the fixed order corners are produced in.
var CornerOrder = [4]CornerName{NW, NE, SE, SW}

// Offset is a planar east/north displacement from a center, in km.
// It only feeds the bearing and distance of a geodesic query; the corner
// position always comes from the ellipsoidal solve.
type Offset struct {
	EastKm  float64
	NorthKm float64
}

// DistanceKm is the offset length.
func (o Offset) DistanceKm() float64 {
	return math.Hypot(o.EastKm, o.NorthKm)
}

// Bearing is the offset azimuth in [0, 360), clockwise from north.
func (o Offset) Bearing() float64 {
	return geo.BearingFromOffset(o.EastKm, o.NorthKm)
}

// SquareOffsets returns the unrotated corner offsets for a half-side, in CornerOrder.
func SquareOffsets(halfSideKm float64) [4]Offset {
	h := halfSideKm
	return [4]Offset{
		{EastKm: -h, NorthKm: +h},
		{EastKm: +h, NorthKm: +h},
		{EastKm: +h, NorthKm: -h},
		{EastKm: -h, NorthKm: -h},
	}
}

// Corner is one solved square corner.
type Corner struct {
	Name       CornerName
	Offset     Offset
	BearingDeg float64
	DistanceKm float64
	Point      geo.Point
}

// Square is the result of a corner computation.
type Square struct {
	Center     geo.Point
	Mode       mode.Mode
	RadiusKm   float64
	HalfSideKm float64
	Corners    [4]Corner
}

// SideKm is the square edge length.
func (s Square) SideKm() float64 {
	return 2 * s.HalfSideKm
}

// DiagonalKm is the corner-to-corner length.
func (s Square) DiagonalKm() float64 {
	return s.SideKm() * math.Sqrt2
}

// Corner returns the corner with the given name.
func (s Square) Corner(name CornerName) (Corner, bool) {
	for _, c := range s.Corners {
		if c.Name == name {
			return c, true
		}
	}
	return Corner{}, false
}
