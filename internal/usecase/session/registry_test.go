package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestRegistry(ttl time.Duration) (*Registry, *time.Time) {
	clock := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	r := NewRegistry(ttl, nil)
	r.now = func() time.Time { return clock }
	return r, &clock
}

func TestGet_CreatesOnceAndKeepsState(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)

	s := r.Get("abc")
	s.Cart.Add(part.Part{OEMPartNumber: "A"})

	again := r.Get("abc")
	if again != s || again.Cart.Len() != 1 {
		t.Error("expected the same session with its cart")
	}
	if r.Get("other").Cart.Len() != 0 {
		t.Error("sessions must not share carts")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestGet_EvictsLeastRecentlySeenAtCap(t *testing.T) {
	r, clock := newTestRegistry(time.Hour)
	r.WithMaxSessions(2)

	r.Get("a")
	*clock = clock.Add(time.Minute)
	r.Get("b")
	*clock = clock.Add(time.Minute)
	r.Get("a") // a is now the most recent
	*clock = clock.Add(time.Minute)

	r.Get("c")
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	r.mu.Lock()
	_, hasA := r.sessions["a"]
	_, hasB := r.sessions["b"]
	r.mu.Unlock()
	if !hasA || hasB {
		t.Errorf("expected b evicted, have a=%v b=%v", hasA, hasB)
	}
}

func TestWithMaxSessions_NonPositiveKeepsDefault(t *testing.T) {
	r := NewRegistry(time.Hour, nil).WithMaxSessions(0)
	if r.maxSessions != DefaultMaxSessions {
		t.Errorf("maxSessions = %d, want %d", r.maxSessions, DefaultMaxSessions)
	}
}

func TestSweep_ExpiresIdle(t *testing.T) {
	r, clock := newTestRegistry(30 * time.Minute)
	r.Get("old")
	*clock = clock.Add(20 * time.Minute)
	r.Get("fresh")
	*clock = clock.Add(15 * time.Minute)

	if n := r.Sweep(); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestSweep_Disabled(t *testing.T) {
	r, clock := newTestRegistry(0)
	r.Get("a")
	*clock = clock.Add(24 * time.Hour)

	if n := r.Sweep(); n != 0 {
		t.Errorf("Sweep() = %d, want 0", n)
	}
}

func TestGet_Concurrent(t *testing.T) {
	r := NewRegistry(time.Hour, nil)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Get("shared").Cart.Add(part.Part{OEMPartNumber: "X"})
		}()
	}
	wg.Wait()

	if r.Get("shared").Cart.Len() != 1 {
		t.Error("expected one session with one item")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	r := NewRegistry(time.Millisecond, nil)
	r.Get("a")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for r.Len() != 0 {
		select {
		case <-deadline:
			t.Fatal("session was not swept")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done
}
