// Package search orchestrates a part search: connectivity check, lookup,
// offline cache and search history.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
	"github.com/kailas-cloud/partpilot/internal/metrics"
)

const historyWriteTimeout = 5 * time.Second

// Service runs searches. One Service is shared by all sessions.
type Service struct {
	lookup  Lookup
	cache   Cache
	history History
	conn    Connectivity
	logger  *zap.Logger

	wg sync.WaitGroup // in-flight history writes
}

// New creates a search service. history may be nil (search history feature disabled).
func New(lookup Lookup, cache Cache, history History, conn Connectivity, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		lookup:  lookup,
		cache:   cache,
		history: history,
		conn:    conn,
		logger:  logger,
	}
}

// Search runs one search and publishes the outcome to tr unless a newer search
// on tr started in the meantime. tr may be nil for one-shot callers.
func (s *Service) Search(
	ctx context.Context, tr *Tracker, text string, v *vehicle.Vehicle,
) (domsearch.Outcome, error) {
	q, err := domsearch.NewQuery(text, v)
	if err != nil {
		return domsearch.Outcome{Query: text, Results: []part.Part{}}, err
	}
	if tr == nil {
		tr = NewTracker()
	}

	seq := tr.begin(q)
	out, err := s.run(ctx, q)
	out.Seq = seq

	if !tr.finish(seq, out, userMessage(err)) {
		s.logger.Debug("stale search discarded",
			zap.String("query", text), zap.Uint64("seq", seq))
	}
	metrics.SearchesTotal.WithLabelValues(outcomeLabel(out, err)).Inc()
	return out, err
}

func (s *Service) run(ctx context.Context, q domsearch.Query) (domsearch.Outcome, error) {
	empty := domsearch.Outcome{Query: q.Text(), Results: []part.Part{}}

	if s.conn != nil && !s.conn.Online() {
		entry, ok, err := s.cache.Get(ctx, q.Text())
		if err != nil {
			s.logger.Warn("offline cache read failed", zap.String("query", q.Text()), zap.Error(err))
		}
		if !ok {
			return empty, domain.ErrOfflineNoCache
		}
		return domsearch.Outcome{Query: q.Text(), Results: part.NormalizeAll(entry.Results), FromCache: true}, nil
	}

	res, err := s.lookup.Lookup(ctx, BuildPrompt(q))
	if err != nil {
		if errors.Is(err, domain.ErrIntegration) {
			return empty, err
		}
		return empty, fmt.Errorf("%w: %w", domain.ErrIntegration, err)
	}
	parts := part.NormalizeAll(res.Parts)

	if err := s.cache.Put(ctx, q.Text(), parts); err != nil {
		s.logger.Warn("offline cache write failed", zap.String("query", q.Text()), zap.Error(err))
	}
	s.recordHistory(ctx, domsearch.NewHistoryRecord(q, parts))

	return domsearch.Outcome{Query: q.Text(), Results: parts}, nil
}

// recordHistory writes rec in the background. Failures are logged only.
func (s *Service) recordHistory(ctx context.Context, rec domsearch.HistoryRecord) {
	if s.history == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
		defer cancel()
		if _, err := s.history.Create(hctx, rec); err != nil {
			s.logger.Warn("failed to save search history",
				zap.String("query", rec.Query), zap.Error(err))
		}
	}()
}

// Wait blocks until background history writes finish.
func (s *Service) Wait() {
	s.wg.Wait()
}

func userMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrOfflineNoCache):
		return domain.ErrOfflineNoCache.Error()
	case errors.Is(err, domain.ErrIntegration):
		return domain.ErrIntegration.Error()
	default:
		return err.Error()
	}
}

func outcomeLabel(out domsearch.Outcome, err error) string {
	switch {
	case errors.Is(err, domain.ErrOfflineNoCache):
		return "offline_miss"
	case err != nil:
		return "error"
	case out.FromCache:
		return "cached"
	default:
		return "online"
	}
}
