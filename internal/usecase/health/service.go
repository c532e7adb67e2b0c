package health

import (
	"context"
	"math"

	"github.com/kailas-cloud/georegion/internal/domain/geo"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the solver itself is broken.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// One degree of longitude along the WGS84 equator.
const (
	probeDistanceM = 111319.4908
	probeTolerance = 1e-6
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	solver Solver
	script ScriptChecker
}

// New creates a Service. script can be nil.
func New(solver Solver, script ScriptChecker) *Service {
	return &Service{solver: solver, script: script}
}

// Check runs the solver self-check and, when configured, the script check.
func (s *Service) Check(_ context.Context) Report {
	checks := make(map[string]CheckResult)

	solverOK := s.probeSolver()
	if solverOK {
		checks["geodesic"] = CheckOK
	} else {
		checks["geodesic"] = CheckError
	}

	if s.script != nil {
		if err := s.script.Check(); err != nil {
			checks["forecast_script"] = CheckError
		} else {
			checks["forecast_script"] = CheckOK
		}
	}

	status := Healthy
	switch {
	case !solverOK:
		status = Unhealthy
	case checks["forecast_script"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) probeSolver() bool {
	p, err := s.solver.Direct(geo.NewPoint(0, 0), 90, probeDistanceM)
	if err != nil {
		return false
	}
	return math.Abs(p.Lat) < probeTolerance && math.Abs(p.Lon-1) < probeTolerance
}
