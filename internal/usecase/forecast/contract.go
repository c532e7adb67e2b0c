package forecast

import (
	"context"

	"github.com/kailas-cloud/georegion/internal/domain"
	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/domain/region"
)

// BoundsComputer computes the retrieval bounding box.
type BoundsComputer interface {
	Bounds(ctx context.Context, center geo.Point, radiusKm float64) (region.BoundingBox, error)
}

// ConfigWriter persists the retrieval config.
type ConfigWriter interface {
	Write(path string, fields []domain.ConfigField) error
}

// Downloader runs the external retrieval process against a written config.
type Downloader interface {
	Download(ctx context.Context, configPath string, parallel int, cycle string) error
}
