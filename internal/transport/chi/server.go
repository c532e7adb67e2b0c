package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/georegion/internal/domain"
	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/domain/region/mode"
	"github.com/kailas-cloud/georegion/internal/report"
	healthuc "github.com/kailas-cloud/georegion/internal/usecase/health"
	regionuc "github.com/kailas-cloud/georegion/internal/usecase/region"
)

const (
	defaultMaxBatchSize = 1000
	defaultMaxBodyBytes = 1 << 20
)

// errorHandler tries to map a domain error onto resp. Returns the status and true if handled.
type errorHandler func(err error, resp *ErrorResponse) (int, bool)

// Server serves the region API over a chi router.
type Server struct {
	regions       *regionuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	defaultMode   mode.Mode
	maxBatchSize  int
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(regions *regionuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		regions:      regions,
		health:       health,
		logger:       logger,
		defaultMode:  mode.Default,
		maxBatchSize: defaultMaxBatchSize,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		geodesicErrorHandler,
		sentinelHandler(domain.ErrInvalidMode, http.StatusBadRequest, CodeInvalidMode),
		sentinelHandler(domain.ErrInvalidRadius, http.StatusBadRequest, CodeInvalidRadius),
		sentinelHandler(domain.ErrInvalidCoordinates, http.StatusBadRequest, CodeInvalidCoordinates),
		sentinelHandler(domain.ErrPoleInside, http.StatusUnprocessableEntity, CodePoleInside),
		sentinelHandler(domain.ErrBoundsWrap, http.StatusUnprocessableEntity, CodeBoundsWrap),
	}
	return s
}

// WithDefaultMode sets the mode used when a request omits one.
func (s *Server) WithDefaultMode(m mode.Mode) *Server {
	if m.IsValid() {
		s.defaultMode = m
	}
	return s
}

// WithMaxBatchSize caps the number of centers per batch request.
func (s *Server) WithMaxBatchSize(n int) *Server {
	if n > 0 {
		s.maxBatchSize = n
	}
	return s
}

// WithMaxBodyBytes caps the size of a batch request body.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/corners", s.GetCorners)
		r.Post("/corners/batch", s.BatchCorners)
		r.Get("/bounds", s.GetBounds)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
}

// GetCorners handles GET /v1/corners.
func (s *Server) GetCorners(w http.ResponseWriter, r *http.Request) {
	center, radiusKm, err := centerAndRadius(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	m := s.defaultMode
	if v := r.URL.Query().Get("mode"); v != "" {
		m = mode.Mode(v)
	}

	sq, err := s.regions.Corners(r.Context(), center, radiusKm, m)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report.SquareToJSON(sq))
}

// GetBounds handles GET /v1/bounds.
func (s *Server) GetBounds(w http.ResponseWriter, r *http.Request) {
	center, radiusKm, err := centerAndRadius(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	box, err := s.regions.Bounds(r.Context(), center, radiusKm)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report.BoundsToJSON(center, radiusKm, box))
}

// BatchCorners handles POST /v1/corners/batch.
func (s *Server) BatchCorners(w http.ResponseWriter, r *http.Request) {
	var req BatchCornersRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeRequestTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Centers) == 0 || len(req.Centers) > s.maxBatchSize {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("centers count must be between 1 and %d", s.maxBatchSize))
		return
	}
	if req.RadiusKm == nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "radius_km is required")
		return
	}

	m := s.defaultMode
	if req.Mode != "" {
		m = mode.Mode(req.Mode)
	}

	reqs := make([]regionuc.Request, len(req.Centers))
	for i, c := range req.Centers {
		reqs[i] = regionuc.Request{Center: c, RadiusKm: *req.RadiusKm, Mode: m}
	}

	squares, err := s.regions.CornersBatch(r.Context(), reqs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]report.SquareJSON, len(squares))
	for i, sq := range squares {
		items[i] = report.SquareToJSON(sq)
	}
	writeJSON(w, http.StatusOK, BatchCornersResponse{Items: items, Total: len(items)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	rep := s.health.Check(r.Context())

	checks := make(map[string]string, len(rep.Checks))
	for k, v := range rep.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if rep.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(rep.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func centerAndRadius(r *http.Request) (geo.Point, float64, error) {
	q := r.URL.Query()
	lat, err := floatParam(q.Get("lat"), "lat")
	if err != nil {
		return geo.Point{}, 0, err
	}
	lon, err := floatParam(q.Get("lon"), "lon")
	if err != nil {
		return geo.Point{}, 0, err
	}
	radius, err := floatParam(q.Get("radius_km"), "radius_km")
	if err != nil {
		return geo.Point{}, 0, err
	}
	return geo.NewPoint(lat, lon), radius, nil
}

func floatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidMode,
		domain.ErrInvalidRadius,
		domain.ErrInvalidCoordinates,
		domain.ErrPoleInside,
		domain.ErrBoundsWrap,
		domain.ErrGeodesic,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(err error, resp *ErrorResponse) (int, bool) {
		if !errors.Is(err, sentinel) {
			return 0, false
		}
		resp.Code = code
		return status, true
	}
}

// geodesicErrorHandler reports a failed solve with its reason.
func geodesicErrorHandler(err error, resp *ErrorResponse) (int, bool) {
	if !errors.Is(err, domain.ErrGeodesic) {
		return 0, false
	}
	resp.Code = CodeGeodesicFailed
	var ge *domain.GeodesicError
	if errors.As(err, &ge) {
		resp.Reason = ge.Reason
	}
	return http.StatusUnprocessableEntity, true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	resp := ErrorResponse{Message: safeDomainMessage(err)}

	var item *regionuc.BatchItemError
	if errors.As(err, &item) {
		idx := item.Index
		resp.Index = &idx
		resp.Message = fmt.Sprintf("item %d: %s", idx, resp.Message)
	}

	for _, h := range s.errorHandlers {
		if status, ok := h(err, &resp); ok {
			writeJSON(w, status, resp)
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
