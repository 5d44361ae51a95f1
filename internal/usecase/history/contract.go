package history

import (
	"context"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/search"
)

// Repository defines the storage contract for search history.
type Repository interface {
	List(ctx context.Context, order domain.Order, limit int) ([]search.HistoryRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, parallel int) (int, error)
}
