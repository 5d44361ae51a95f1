package garage

import (
	"context"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
)

// Repository defines the storage contract for garaged vehicles.
type Repository interface {
	Create(ctx context.Context, v vehicle.Garaged) (vehicle.Garaged, error)
	List(ctx context.Context, order domain.Order, limit int) ([]vehicle.Garaged, error)
	Delete(ctx context.Context, id string) error
}
