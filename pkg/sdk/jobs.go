package partpilot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain/cart"
	searchuc "github.com/kailas-cloud/partpilot/internal/usecase/search"
)

// JobService manages saved repair jobs.
type JobService struct {
	svc     jobUseCase
	cart    *cart.Cart
	tracker *searchuc.Tracker
	obs     *observer
}

// SaveCart saves the cart as a planned job. A blank vehicleInfo falls back to
// the vehicle of the last search, or its query text. On success the saved
// parts leave the cart; on failure the cart is untouched.
func (s *JobService) SaveCart(ctx context.Context, name, vehicleInfo string) (j Job, err error) {
	start := time.Now()
	defer func() { s.obs.observe("job_save", start, err) }()

	if strings.TrimSpace(vehicleInfo) == "" && s.tracker != nil {
		vehicleInfo = s.tracker.Query().VehicleInfo()
	}

	parts := s.cart.Parts()
	j, err = s.svc.Save(ctx, name, vehicleInfo, parts)
	if err != nil {
		return Job{}, fmt.Errorf("save job: %w", err)
	}
	for i := range parts {
		s.cart.Remove(parts[i].OEMPartNumber)
	}
	return j, nil
}

// List returns all jobs, newest first.
func (s *JobService) List(ctx context.Context) (jobs []Job, err error) {
	start := time.Now()
	defer func() { s.obs.observe("job_list", start, err) }()

	jobs, err = s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Get returns one job or ErrNotFound.
func (s *JobService) Get(ctx context.Context, id string) (j Job, err error) {
	start := time.Now()
	defer func() { s.obs.observe("job_get", start, err) }()

	j, err = s.svc.Get(ctx, id)
	if err != nil {
		return Job{}, fmt.Errorf("get job %s: %w", id, err)
	}
	return j, nil
}

// SetStatus moves a job along planned -> in_progress -> completed.
// A disallowed move returns ErrInvalidTransition.
func (s *JobService) SetStatus(ctx context.Context, id string, status JobStatus) (j Job, err error) {
	start := time.Now()
	defer func() { s.obs.observe("job_status", start, err) }()

	j, err = s.svc.SetStatus(ctx, id, status)
	if err != nil {
		return Job{}, fmt.Errorf("set job %s status: %w", id, err)
	}
	return j, nil
}

// MarkPurchased flags one part of a job as bought (or not).
func (s *JobService) MarkPurchased(ctx context.Context, id, oemPartNumber string, purchased bool) (j Job, err error) {
	start := time.Now()
	defer func() { s.obs.observe("job_purchased", start, err) }()

	j, err = s.svc.SetPartPurchased(ctx, id, oemPartNumber, purchased)
	if err != nil {
		return Job{}, fmt.Errorf("mark part %s on job %s: %w", oemPartNumber, id, err)
	}
	return j, nil
}

// Delete removes a job.
func (s *JobService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("job_delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	return nil
}
