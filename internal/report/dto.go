package report

import (
	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/domain/region"
)

// CornerJSON is the wire form of a corner.
type CornerJSON struct {
	Name       string  `json:"name"`
	EastKm     float64 `json:"east_km"`
	NorthKm    float64 `json:"north_km"`
	BearingDeg float64 `json:"bearing_deg"`
	DistanceKm float64 `json:"distance_km"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// SquareJSON is the wire form of a square.
type SquareJSON struct {
	Center     geo.Point    `json:"center"`
	Mode       string       `json:"mode"`
	HalfSideKm float64      `json:"half_side_km"`
	SideKm     float64      `json:"side_km"`
	DiagonalKm float64      `json:"diagonal_km"`
	Corners    []CornerJSON `json:"corners"`
}

// BoundsJSON is the wire form of a bounding box.
type BoundsJSON struct {
	Center   *geo.Point        `json:"center,omitempty"`
	RadiusKm float64           `json:"radius_km,omitempty"`
	Top      float64           `json:"top"`
	Bottom   float64           `json:"bottom"`
	Left     float64           `json:"left"`
	Right    float64           `json:"right"`
	Wrapped  bool              `json:"wrapped"`
	Segments []region.LonRange `json:"segments"`
}

// SquareToJSON converts a square to its wire form.
func SquareToJSON(sq region.Square) SquareJSON {
	out := SquareJSON{
		Center:     sq.Center,
		Mode:       string(sq.Mode),
		HalfSideKm: sq.HalfSideKm,
		SideKm:     sq.SideKm(),
		DiagonalKm: sq.DiagonalKm(),
		Corners:    make([]CornerJSON, len(sq.Corners)),
	}
	for i, c := range sq.Corners {
		out.Corners[i] = CornerJSON{
			Name:       string(c.Name),
			EastKm:     c.Offset.EastKm,
			NorthKm:    c.Offset.NorthKm,
			BearingDeg: c.BearingDeg,
			DistanceKm: c.DistanceKm,
			Lat:        c.Point.Lat,
			Lon:        c.Point.Lon,
		}
	}
	return out
}

// BoundsToJSON converts a bounding box to its wire form.
func BoundsToJSON(center geo.Point, radiusKm float64, b region.BoundingBox) BoundsJSON {
	return BoundsJSON{
		Center:   &center,
		RadiusKm: radiusKm,
		Top:      b.Top,
		Bottom:   b.Bottom,
		Left:     b.Left,
		Right:    b.Right,
		Wrapped:  b.Wrapped,
		Segments: b.Segments(),
	}
}
