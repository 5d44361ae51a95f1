package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockLookupChecker struct {
	err error
}

func (m *mockLookupChecker) HealthCheck(_ context.Context) error { return m.err }

type mockConn bool

func (m mockConn) Online() bool { return bool(m) }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockLookupChecker{}, mockConn(true))
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK || r.Checks["lookup"] != CheckOK {
		t.Errorf("unexpected checks: %v", r.Checks)
	}
	if !r.Online {
		t.Error("expected online")
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, &mockLookupChecker{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
}

func TestCheck_LookupError(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockLookupChecker{err: errors.New("timeout")}, mockConn(false))
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["lookup"] != CheckError {
		t.Errorf("expected lookup %q, got %q", CheckError, r.Checks["lookup"])
	}
	if r.Online {
		t.Error("expected offline")
	}
}

func TestCheck_NilLookup(t *testing.T) {
	svc := New(&mockDBPinger{}, nil, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["lookup"]; ok {
		t.Error("lookup check should be absent when checker is nil")
	}
	if !r.Online {
		t.Error("nil connectivity counts as online")
	}
}
