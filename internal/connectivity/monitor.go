// Package connectivity tracks whether the part lookup integration is reachable.
//
// The effective state is the operator override when one is set, otherwise the
// result of the last probe. Every change of the effective state is delivered to
// all subscribers.
package connectivity

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/metrics"
)

// Prober reports whether the integration answers.
type Prober interface {
	HealthCheck(ctx context.Context) error
}

// Transition is one change of the effective state.
type Transition struct {
	Online bool
	Forced bool
	At     time.Time
}

// Monitor is the connectivity signal. The zero value is not usable; call New.
type Monitor struct {
	mu       sync.RWMutex
	probed   bool
	forced   *bool
	subs     map[int]chan Transition
	nextSub  int
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a monitor that starts online until the first probe says otherwise.
// prober may be nil, in which case only Force changes the state.
func New(prober Prober, interval time.Duration, logger *zap.Logger) *Monitor {
	timeout := interval / 2
	if timeout <= 0 || timeout > 10*time.Second {
		timeout = 10 * time.Second
	}
	m := &Monitor{
		probed:   true,
		subs:     make(map[int]chan Transition),
		prober:   prober,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
	metrics.Online.Set(1)
	return m
}

// Online returns the effective state.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.effectiveLocked()
}

// Forced returns the override, or nil when probing decides.
func (m *Monitor) Forced() *bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.forced == nil {
		return nil
	}
	v := *m.forced
	return &v
}

func (m *Monitor) effectiveLocked() bool {
	if m.forced != nil {
		return *m.forced
	}
	return m.probed
}

// Subscribe returns a channel of transitions and a cancel func that closes it.
// Slow subscribers miss transitions rather than block the monitor.
func (m *Monitor) Subscribe() (<-chan Transition, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan Transition, 4)
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
}

// Force overrides the probe. nil clears the override.
func (m *Monitor) Force(state *bool) {
	m.update(func() {
		if state == nil {
			m.forced = nil
			return
		}
		v := *state
		m.forced = &v
	})
}

// Probe runs one health check and records the result.
func (m *Monitor) Probe(ctx context.Context) bool {
	if m.prober == nil {
		return m.Online()
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.prober.HealthCheck(ctx)
	if err != nil {
		m.logger.Debug("Connectivity probe failed", zap.Error(err))
	}
	m.update(func() { m.probed = err == nil })
	return err == nil
}

// Run probes immediately and then every interval until ctx is canceled.
func (m *Monitor) Run(ctx context.Context) {
	if m.prober == nil || m.interval <= 0 {
		return
	}

	m.Probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// update applies fn and notifies subscribers if the effective state changed.
func (m *Monitor) update(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.effectiveLocked()
	fn()
	after := m.effectiveLocked()
	if before == after {
		return
	}

	if after {
		metrics.Online.Set(1)
	} else {
		metrics.Online.Set(0)
	}
	m.logger.Info("Connectivity changed", zap.Bool("online", after), zap.Bool("forced", m.forced != nil))

	tr := Transition{Online: after, Forced: m.forced != nil, At: time.Now()}
	for _, ch := range m.subs {
		select {
		case ch <- tr:
		default:
		}
	}
}
