package georegion

import (
	"context"
	"time"

	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/geodesic"
	regionuc "github.com/kailas-cloud/georegion/internal/usecase/region"
)

// Client is the georegion SDK entry point. It is safe for concurrent use.
type Client struct {
	regions *regionuc.Service
	obs     *observer
}

// New creates a Client backed by the WGS84 geodesic solver.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	regions := regionuc.New(geodesic.NewWGS84()).
		WithMaxRadius(cfg.maxRadiusKm).
		WithConcurrency(cfg.concurrency)

	return &Client{regions: regions, obs: obs}, nil
}

// Corners computes the four square corners around (lat, lon), in NW, NE, SE, SW order.
func (c *Client) Corners(ctx context.Context, lat, lon, radiusKm float64, m Mode) (sq Square, err error) {
	defer func(start time.Time) {
		c.obs.observe("corners", start, err,
			"lat", lat, "lon", lon, "radius_km", radiusKm, "mode", string(m))
	}(time.Now())

	return c.regions.Corners(ctx, geo.NewPoint(lat, lon), radiusKm, m)
}

// Bounds computes the lat/lon bounding box of the circle of radiusKm around (lat, lon).
// Radii reaching a pole fail with ErrPoleInside.
func (c *Client) Bounds(ctx context.Context, lat, lon, radiusKm float64) (b BoundingBox, err error) {
	defer func(start time.Time) {
		c.obs.observe("bounds", start, err, "lat", lat, "lon", lon, "radius_km", radiusKm)
	}(time.Now())

	return c.regions.Bounds(ctx, geo.NewPoint(lat, lon), radiusKm)
}

// CornersBatch computes one square per center with a shared radius and mode.
// Results keep the order of centers. The first failure aborts the batch.
func (c *Client) CornersBatch(ctx context.Context, centers []Point, radiusKm float64, m Mode) (out []Square, err error) {
	defer func(start time.Time) {
		c.obs.observe("corners_batch", start, err, "count", len(centers), "radius_km", radiusKm)
	}(time.Now())

	reqs := make([]regionuc.Request, len(centers))
	for i, p := range centers {
		reqs[i] = regionuc.Request{Center: p, RadiusKm: radiusKm, Mode: m}
	}
	return c.regions.CornersBatch(ctx, reqs)
}
