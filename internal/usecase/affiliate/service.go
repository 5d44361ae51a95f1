// Package affiliate records purchase-link clicks in a bounded KV-backed log.
package affiliate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/partpilot/internal/db"
	"github.com/kailas-cloud/partpilot/internal/domain"
	domaff "github.com/kailas-cloud/partpilot/internal/domain/affiliate"
	"github.com/kailas-cloud/partpilot/internal/domain/optional"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

// LogKey is the KV key holding the click log.
const LogKey = domain.KeyPrefix + "affiliate_clicks"

// MaxClicks bounds the click log; older clicks are dropped.
const MaxClicks = 100

// store is the consumer interface for the click log (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Service tags links and tracks clicks.
type Service struct {
	mu    sync.Mutex
	store store
	ids   domaff.IDs
	now   func() time.Time
}

// New creates an affiliate service.
func New(s store, ids domaff.IDs) *Service {
	return &Service{store: s, ids: ids, now: time.Now}
}

// TagParts tags every purchase link of parts.
func (s *Service) TagParts(parts []part.Part) []part.Part {
	return s.ids.TagParts(parts)
}

// Track appends a click to the log, keeping the most recent MaxClicks.
func (s *Service) Track(ctx context.Context, storeName, partName string, price optional.Value[float64]) (domaff.Click, error) {
	if strings.TrimSpace(storeName) == "" {
		return domaff.Click{}, fmt.Errorf("%w: store is required", domain.ErrValidation)
	}
	click := domaff.Click{Timestamp: s.now().UTC(), Store: storeName, Part: partName, Price: price}

	s.mu.Lock()
	defer s.mu.Unlock()

	clicks, err := s.load(ctx)
	if err != nil {
		return domaff.Click{}, err
	}
	clicks = append(clicks, click)
	if len(clicks) > MaxClicks {
		clicks = clicks[len(clicks)-MaxClicks:]
	}

	data, err := json.Marshal(clicks)
	if err != nil {
		return domaff.Click{}, fmt.Errorf("encode clicks: %w", err)
	}
	if err := s.store.Set(ctx, LogKey, data); err != nil {
		return domaff.Click{}, fmt.Errorf("save clicks: %w", err)
	}
	return click, nil
}

// Stats aggregates the click log.
func (s *Service) Stats(ctx context.Context) (domaff.Stats, error) {
	clicks, err := s.load(ctx)
	if err != nil {
		return domaff.Stats{}, err
	}
	return domaff.Aggregate(clicks), nil
}

func (s *Service) load(ctx context.Context) ([]domaff.Click, error) {
	data, err := s.store.Get(ctx, LogKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load clicks: %w", err)
	}
	var clicks []domaff.Click
	if err := json.Unmarshal(data, &clicks); err != nil {
		return nil, fmt.Errorf("decode clicks: %w", err)
	}
	return clicks, nil
}
