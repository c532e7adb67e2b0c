package georegion

import (
	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/domain/region"
	"github.com/kailas-cloud/georegion/internal/domain/region/mode"
)

// Point is a WGS84 latitude/longitude pair in degrees.
type Point = geo.Point

// Square is a computed square with its corners in NW, NE, SE, SW order.
type Square = region.Square

// Corner is one named square corner.
type Corner = region.Corner

// BoundingBox is a lat/lon box in the [0,360) longitude frame.
type BoundingBox = region.BoundingBox

// LonRange is a longitude interval in the [0,360) frame.
type LonRange = region.LonRange

// Mode selects how the radius maps to the square's half-side.
type Mode = mode.Mode

// Radius interpretation modes.
const (
	HalfSide         = mode.HalfSide
	EncloseCircle    = mode.EncloseCircle
	InscribeInCircle = mode.InscribeInCircle
)

// WrapPolicy selects how seam-crossing boxes are published by Edges.
type WrapPolicy = region.WrapPolicy

// Wrap policies.
const (
	WrapReject = region.WrapReject
	WrapSwap   = region.WrapSwap
	WrapRaw    = region.WrapRaw
)
