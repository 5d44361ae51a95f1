package savedparts

import (
	"context"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

// Repository defines the storage contract for saved parts.
type Repository interface {
	Create(ctx context.Context, s part.Saved) (part.Saved, error)
	List(ctx context.Context, order domain.Order, limit int) ([]part.Saved, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, parallel int) (int, error)
}
