// Package garage manages the user's saved vehicles.
package garage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
)

// Service handles garage CRUD.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a garage service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Add validates the vehicle and stores it.
func (s *Service) Add(ctx context.Context, v vehicle.Vehicle, nickname string) (vehicle.Garaged, error) {
	valid, err := vehicle.New(v.Year, v.Make, v.Model, v.Engine, s.now())
	if err != nil {
		return vehicle.Garaged{}, err
	}

	g, err := s.repo.Create(ctx, vehicle.Garaged{Vehicle: valid, Nickname: strings.TrimSpace(nickname)})
	if err != nil {
		return vehicle.Garaged{}, fmt.Errorf("add vehicle: %w", err)
	}
	return g, nil
}

// List returns garaged vehicles, newest first.
func (s *Service) List(ctx context.Context) ([]vehicle.Garaged, error) {
	vs, err := s.repo.List(ctx, domain.NewestFirst, 0)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vs, nil
}

// Delete removes a vehicle.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}
