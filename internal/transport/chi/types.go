package chi

import (
	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/report"
)

// ErrorCode is a machine-readable API error code.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeNotFound           ErrorCode = "not_found"
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeInvalidMode        ErrorCode = "invalid_mode"
	CodeInvalidRadius      ErrorCode = "invalid_radius"
	CodeInvalidCoordinates ErrorCode = "invalid_coordinates"
	CodePoleInside         ErrorCode = "pole_inside"
	CodeBoundsWrap         ErrorCode = "bounds_wrap"
	CodeGeodesicFailed     ErrorCode = "geodesic_failed"
	CodeRequestTooLarge    ErrorCode = "request_too_large"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
// Index points at the failing center of a batch request.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Reason  string    `json:"reason,omitempty"`
	Index   *int      `json:"index,omitempty"`
}

// BatchCornersRequest is the body of POST /v1/corners/batch.
type BatchCornersRequest struct {
	Mode     string      `json:"mode,omitempty"`
	RadiusKm *float64    `json:"radius_km"`
	Centers  []geo.Point `json:"centers"`
}

// BatchCornersResponse lists squares in request order.
type BatchCornersResponse struct {
	Items []report.SquareJSON `json:"items"`
	Total int                 `json:"total"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
