package georegion

import (
	"github.com/kailas-cloud/georegion/internal/domain"
	regionuc "github.com/kailas-cloud/georegion/internal/usecase/region"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrGeodesic           = domain.ErrGeodesic
	ErrInvalidMode        = domain.ErrInvalidMode
	ErrInvalidRadius      = domain.ErrInvalidRadius
	ErrInvalidCoordinates = domain.ErrInvalidCoordinates
	ErrPoleInside         = domain.ErrPoleInside
	ErrBoundsWrap         = domain.ErrBoundsWrap
)

// GeodesicError carries the inputs of a failed solve. Use errors.As() to inspect.
type GeodesicError = domain.GeodesicError

// BatchItemError names the failing center of CornersBatch. Use errors.As() to inspect.
type BatchItemError = regionuc.BatchItemError
