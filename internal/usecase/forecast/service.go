package forecast

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/georegion/internal/domain"
	"github.com/kailas-cloud/georegion/internal/domain/region"
	"github.com/kailas-cloud/georegion/internal/logger"
)

// RunOptions controls where the config goes and whether retrieval runs.
type RunOptions struct {
	ConfigPath string
	Parallel   int
	DryRun     bool
}

// Result describes a completed run.
type Result struct {
	Plan       Plan
	Box        region.BoundingBox
	Published  Bounds
	ConfigPath string
	Downloaded bool
}

// Service plans a forecast retrieval, writes its config and starts the download.
type Service struct {
	bounds     BoundsComputer
	writer     ConfigWriter
	downloader Downloader
	wrap       region.WrapPolicy
}

// New creates a forecast service. downloader can be nil when only dry runs are used.
func New(bounds BoundsComputer, writer ConfigWriter, downloader Downloader) *Service {
	return &Service{
		bounds:     bounds,
		writer:     writer,
		downloader: downloader,
		wrap:       region.WrapReject,
	}
}

// WithWrapPolicy sets how seam-crossing boxes are published.
func (s *Service) WithWrapPolicy(p region.WrapPolicy) *Service {
	if p.IsValid() {
		s.wrap = p
	}
	return s
}

// Run computes the box, writes the config and, unless DryRun, runs the downloader.
// The download is not retried.
func (s *Service) Run(ctx context.Context, req Request, opts RunOptions) (Result, error) {
	log := logger.FromContext(ctx)

	plan, err := NewPlan(req)
	if err != nil {
		return Result{}, err
	}
	if opts.ConfigPath == "" {
		return Result{}, fmt.Errorf("%w: config path is required", domain.ErrInvalidForecast)
	}

	box, err := s.bounds.Bounds(ctx, req.Center, req.RadiusKm)
	if err != nil {
		return Result{}, fmt.Errorf("compute bounds: %w", err)
	}

	left, right, err := box.Edges(s.wrap)
	if err != nil {
		return Result{}, fmt.Errorf("publish bounds: %w", err)
	}
	pub := Bounds{Top: box.Top, Bottom: box.Bottom, Left: left, Right: right}

	if err := s.writer.Write(opts.ConfigPath, plan.Fields(pub)); err != nil {
		return Result{}, fmt.Errorf("write config: %w", err)
	}
	log.Info("Wrote retrieval config",
		zap.String("path", opts.ConfigPath),
		zap.String("cycle", plan.CycleID),
		zap.Strings("intervals", plan.Intervals),
	)

	res := Result{Plan: plan, Box: box, Published: pub, ConfigPath: opts.ConfigPath}

	if opts.DryRun {
		log.Info("Dry run, skipping download")
		return res, nil
	}
	if s.downloader == nil {
		return Result{}, fmt.Errorf("download requested but no downloader configured")
	}

	if err := s.downloader.Download(ctx, opts.ConfigPath, opts.Parallel, plan.CycleID); err != nil {
		return Result{}, fmt.Errorf("download: %w", err)
	}
	res.Downloaded = true
	return res, nil
}
