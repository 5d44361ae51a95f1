// Package savedparts manages the user's bookmarked parts list.
package savedparts

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

const clearParallelism = 8

// Service handles saved-part CRUD.
type Service struct {
	repo Repository
}

// New creates a saved-parts service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save bookmarks a part. The OEM part number is required.
func (s *Service) Save(ctx context.Context, p part.Part, vehicleInfo, notes string) (part.Saved, error) {
	if strings.TrimSpace(p.OEMPartNumber) == "" {
		return part.Saved{}, fmt.Errorf("%w: oem_part_number is required", domain.ErrValidation)
	}
	saved, err := s.repo.Create(ctx, part.NewSaved(&p, vehicleInfo, notes))
	if err != nil {
		return part.Saved{}, fmt.Errorf("save part: %w", err)
	}
	return saved, nil
}

// List returns saved parts, newest first.
func (s *Service) List(ctx context.Context) ([]part.Saved, error) {
	parts, err := s.repo.List(ctx, domain.NewestFirst, 0)
	if err != nil {
		return nil, fmt.Errorf("list saved parts: %w", err)
	}
	return parts, nil
}

// Delete removes one saved part.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete saved part: %w", err)
	}
	return nil
}

// Clear removes every saved part and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	return s.repo.DeleteAll(ctx, clearParallelism)
}
