package connectivity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- Mocks ---

type mockProber struct {
	mu    sync.Mutex
	err   error
	calls atomic.Int32
}

func (p *mockProber) HealthCheck(_ context.Context) error {
	p.calls.Add(1)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *mockProber) set(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func ptr(b bool) *bool { return &b }

// --- Tests ---

func TestNew_StartsOnline(t *testing.T) {
	m := New(nil, 0, zap.NewNop())
	if !m.Online() {
		t.Fatal("expected monitor to start online")
	}
	if m.Forced() != nil {
		t.Error("expected no override")
	}
}

func TestProbe_FlipsStateAndNotifies(t *testing.T) {
	p := &mockProber{}
	m := New(p, time.Minute, zap.NewNop())

	ch, cancel := m.Subscribe()
	defer cancel()

	p.set(errors.New("dial tcp: connection refused"))
	if m.Probe(context.Background()) {
		t.Fatal("expected probe to fail")
	}
	if m.Online() {
		t.Fatal("expected offline after failed probe")
	}

	select {
	case tr := <-ch:
		if tr.Online || tr.Forced {
			t.Errorf("unexpected transition: %+v", tr)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a transition")
	}

	// same state again: no event
	m.Probe(context.Background())
	select {
	case tr := <-ch:
		t.Fatalf("unexpected transition: %+v", tr)
	default:
	}
}

func TestForce_OverridesProbe(t *testing.T) {
	p := &mockProber{}
	m := New(p, time.Minute, zap.NewNop())

	m.Force(ptr(false))
	m.Probe(context.Background())
	if m.Online() {
		t.Fatal("forced offline must win over a successful probe")
	}
	if f := m.Forced(); f == nil || *f {
		t.Errorf("Forced() = %v", f)
	}

	m.Force(nil)
	if !m.Online() {
		t.Fatal("expected probe state after clearing override")
	}
}

func TestForce_CopiesValue(t *testing.T) {
	m := New(nil, 0, zap.NewNop())
	v := false
	m.Force(&v)
	v = true
	if m.Online() {
		t.Fatal("override must not alias the caller's variable")
	}
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	m := New(nil, 0, zap.NewNop())
	ch, cancel := m.Subscribe()
	cancel()
	cancel() // idempotent

	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}
	m.Force(ptr(false)) // must not panic sending to a removed subscriber
}

func TestRun_ProbesUntilCanceled(t *testing.T) {
	p := &mockProber{}
	m := New(p, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for p.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("expected repeated probes")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestRun_NoProberReturnsImmediately(t *testing.T) {
	m := New(nil, time.Millisecond, zap.NewNop())
	m.Run(context.Background())
}
