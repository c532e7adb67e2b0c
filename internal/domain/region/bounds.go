package region

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/georegion/internal/domain"
	"github.com/kailas-cloud/georegion/internal/domain/geo"
)

// BoundingBox is a lat/lon box built from four cardinal probes.
//
// Left and Right are in the [0, 360) frame with Left <= Right. When the west
// probe lies east of the east probe in that frame the box crosses the 0/360
// seam: the edges are swapped to keep Left <= Right and Wrapped is set, so the
// area actually covered is [0, Left] plus [Right, 360). Use Segments or
// West/East rather than reading Left/Right as a contiguous span.
type BoundingBox struct {
	Top     float64
	Bottom  float64
	Left    float64
	Right   float64
	Wrapped bool
}

// LonRange is a contiguous longitude interval in the [0, 360] frame.
type LonRange struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// NewBoundingBox assembles a box from the north, south, east and west probe points.
func NewBoundingBox(north, south, east, west geo.Point) BoundingBox {
	b := BoundingBox{
		Top:    math.Max(north.Lat, south.Lat),
		Bottom: math.Min(north.Lat, south.Lat),
		Left:   geo.Norm360(west.Lon),
		Right:  geo.Norm360(east.Lon),
	}
	if b.Left > b.Right {
		b.Left, b.Right = b.Right, b.Left
		b.Wrapped = true
	}
	return b
}

// West is the unswapped western edge in [0, 360).
func (b BoundingBox) West() float64 {
	if b.Wrapped {
		return b.Right
	}
	return b.Left
}

// East is the unswapped eastern edge in [0, 360).
func (b BoundingBox) East() float64 {
	if b.Wrapped {
		return b.Left
	}
	return b.Right
}

// SpanDeg is the longitudinal width actually covered.
func (b BoundingBox) SpanDeg() float64 {
	if b.Wrapped {
		return 360 - (b.Right - b.Left)
	}
	return b.Right - b.Left
}

// Segments returns the covered longitude ranges, west to east within the 0..360 frame.
func (b BoundingBox) Segments() []LonRange {
	if !b.Wrapped {
		return []LonRange{{From: b.Left, To: b.Right}}
	}
	return []LonRange{{From: 0, To: b.Left}, {From: b.Right, To: 360}}
}

// ContainsLon reports whether a longitude (any frame) falls within the box.
func (b BoundingBox) ContainsLon(lon float64) bool {
	x := geo.Norm360(lon)
	for _, s := range b.Segments() {
		if x >= s.From && x <= s.To {
			return true
		}
	}
	return false
}

// WrapPolicy selects how a seam-crossing box is handed to consumers that
// only accept a single LEFT/RIGHT pair.
type WrapPolicy string

// Wrap policies.
const (
	// WrapReject refuses seam-crossing boxes.
	WrapReject WrapPolicy = "reject"
	// WrapSwap hands out the swapped Left/Right as is.
	WrapSwap WrapPolicy = "swap"
	// WrapRaw hands out the unswapped west/east, so left > right signals the wrap.
	WrapRaw WrapPolicy = "raw"
)

// IsValid checks if the policy is one of the supported values.
func (p WrapPolicy) IsValid() bool {
	return p == WrapReject || p == WrapSwap || p == WrapRaw
}

// Edges returns the left/right pair to publish under the given policy.
func (b BoundingBox) Edges(p WrapPolicy) (left, right float64, err error) {
	if !b.Wrapped {
		return b.Left, b.Right, nil
	}
	switch p {
	case WrapSwap:
		return b.Left, b.Right, nil
	case WrapRaw:
		return b.West(), b.East(), nil
	case WrapReject:
		return 0, 0, fmt.Errorf("%w: west %.6f east %.6f", domain.ErrBoundsWrap, b.West(), b.East())
	default:
		return 0, 0, fmt.Errorf("unknown wrap policy %q", p)
	}
}
