// Package history lists and prunes recorded searches.
package history

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/search"
)

// DefaultLimit is the page size when the caller gives none.
const DefaultLimit = 50

const clearParallelism = 8

// Service handles search history.
type Service struct {
	repo Repository
}

// New creates a history service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns up to limit records, newest first. limit <= 0 means DefaultLimit.
func (s *Service) List(ctx context.Context, limit int) ([]search.HistoryRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	recs, err := s.repo.List(ctx, domain.NewestFirst, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return recs, nil
}

// Delete removes one record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete history record: %w", err)
	}
	return nil
}

// Clear removes the whole history and returns how many records were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	return s.repo.DeleteAll(ctx, clearParallelism)
}
