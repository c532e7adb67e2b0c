package region

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/georegion/internal/domain/geo"
	domregion "github.com/kailas-cloud/georegion/internal/domain/region"
	"github.com/kailas-cloud/georegion/internal/domain/region/mode"
)

// Request is one square to compute in a batch.
type Request struct {
	Center   geo.Point
	RadiusKm float64
	Mode     mode.Mode
}

// BatchItemError reports which request of a batch failed.
type BatchItemError struct {
	Index int
	Err   error
}

func (e *BatchItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *BatchItemError) Unwrap() error { return e.Err }

// CornersBatch computes squares for many centers concurrently.
// Results keep the input order; the first failure cancels the rest and is returned.
func (s *Service) CornersBatch(ctx context.Context, reqs []Request) (out []domregion.Square, err error) {
	defer observe("batch", time.Now(), &err)

	out = make([]domregion.Square, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // context error as is
			}
			sq, err := s.Corners(gctx, req.Center, req.RadiusKm, req.Mode)
			if err != nil {
				return &BatchItemError{Index: i, Err: err}
			}
			out[i] = sq
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped per item
	}
	return out, nil
}
