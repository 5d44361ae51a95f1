// Package job persists carts as repair jobs and manages their lifecycle.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain"
	domjob "github.com/kailas-cloud/partpilot/internal/domain/job"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

// Service handles job persistence.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a job service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Save turns cart parts into a planned job with a single create.
// A blank name fails validation before the store is touched; a store failure
// maps to domain.ErrPersistence and leaves the caller's cart intact.
func (s *Service) Save(ctx context.Context, name, vehicleInfo string, parts []part.Part) (domjob.Job, error) {
	j, err := domjob.New(name, vehicleInfo, parts)
	if err != nil {
		return domjob.Job{}, err
	}

	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return domjob.Job{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return created, nil
}

// List returns all jobs, newest first.
func (s *Service) List(ctx context.Context) ([]domjob.Job, error) {
	jobs, err := s.repo.List(ctx, domain.NewestFirst, 0)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Get retrieves a job by id.
func (s *Service) Get(ctx context.Context, id string) (domjob.Job, error) {
	j, err := s.repo.Get(ctx, id)
	if err != nil {
		return domjob.Job{}, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// SetStatus moves a job through its lifecycle.
func (s *Service) SetStatus(ctx context.Context, id string, status domjob.Status) (domjob.Job, error) {
	j, err := s.repo.Update(ctx, id, func(j *domjob.Job) error {
		if err := j.Transition(status); err != nil {
			return err
		}
		j.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return domjob.Job{}, fmt.Errorf("set job status: %w", err)
	}
	return j, nil
}

// SetPartPurchased flips the purchased flag of one part line.
func (s *Service) SetPartPurchased(ctx context.Context, id, oemPartNumber string, purchased bool) (domjob.Job, error) {
	j, err := s.repo.Update(ctx, id, func(j *domjob.Job) error {
		if err := j.MarkPurchased(oemPartNumber, purchased); err != nil {
			return err
		}
		j.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return domjob.Job{}, fmt.Errorf("set part purchased: %w", err)
	}
	return j, nil
}

// Delete removes a job.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
