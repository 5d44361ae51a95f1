package job

import (
	"context"

	"github.com/kailas-cloud/partpilot/internal/domain"
	domjob "github.com/kailas-cloud/partpilot/internal/domain/job"
)

// Repository defines the storage contract for jobs.
type Repository interface {
	Create(ctx context.Context, j domjob.Job) (domjob.Job, error)
	Get(ctx context.Context, id string) (domjob.Job, error)
	List(ctx context.Context, order domain.Order, limit int) ([]domjob.Job, error)
	Update(ctx context.Context, id string, fn func(*domjob.Job) error) (domjob.Job, error)
	Delete(ctx context.Context, id string) error
}
