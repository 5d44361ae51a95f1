// Package session keeps the per-browser-session state that never reaches the
// entity store: the cart and the displayed search.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/domain/cart"
	"github.com/kailas-cloud/partpilot/internal/usecase/search"
)

// Session is the state owned by one client session.
type Session struct {
	ID     string
	Cart   *cart.Cart
	Search *search.Tracker

	lastSeen time.Time
}

// DefaultMaxSessions caps live sessions when no explicit limit is set.
const DefaultMaxSessions = 10000

// Registry maps session ids to sessions and expires idle ones.
type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time
	logger      *zap.Logger
}

// NewRegistry creates a registry holding at most DefaultMaxSessions sessions.
// idleTTL <= 0 disables expiry.
func NewRegistry(idleTTL time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions:    make(map[string]*Session),
		idleTTL:     idleTTL,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		logger:      logger,
	}
}

// WithMaxSessions sets the session cap. n <= 0 keeps the current cap.
func (r *Registry) WithMaxSessions(n int) *Registry {
	if n > 0 {
		r.maxSessions = n
	}
	return r
}

// Get returns the session for id, creating it on first use, and marks it active.
// At the cap, creating a session evicts the least recently seen one.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		if len(r.sessions) >= r.maxSessions {
			r.evictOldest()
		}
		s = &Session{ID: id, Cart: cart.New(), Search: search.NewTracker()}
		r.sessions[id] = s
	}
	s.lastSeen = r.now()
	return s
}

// evictOldest drops the least recently seen session. Caller holds r.mu.
func (r *Registry) evictOldest() {
	var oldest *Session
	for _, s := range r.sessions {
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(r.sessions, oldest.ID)
		r.logger.Debug("evicted session at capacity", zap.String("session_id", oldest.ID))
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many it dropped.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	n := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is canceled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.idleTTL <= 0 || interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("expired idle sessions", zap.Int("count", n))
			}
		}
	}
}
