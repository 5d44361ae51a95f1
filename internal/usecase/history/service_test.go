package history

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/search"
)

// --- Mocks ---

type mockRepo struct {
	lastLimit int
	lastOrder domain.Order
	recs      []search.HistoryRecord
	err       error
}

func (m *mockRepo) List(_ context.Context, order domain.Order, limit int) ([]search.HistoryRecord, error) {
	m.lastOrder, m.lastLimit = order, limit
	return m.recs, m.err
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if id != "h-1" {
		return domain.ErrNotFound
	}
	return nil
}

func (m *mockRepo) DeleteAll(_ context.Context, _ int) (int, error) {
	return len(m.recs), m.err
}

// --- Tests ---

func TestList_DefaultLimit(t *testing.T) {
	repo := &mockRepo{}
	if _, err := New(repo).List(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != DefaultLimit || repo.lastOrder != domain.NewestFirst {
		t.Errorf("limit=%d order=%v", repo.lastLimit, repo.lastOrder)
	}
}

func TestList_ExplicitLimit(t *testing.T) {
	repo := &mockRepo{recs: []search.HistoryRecord{{ID: "h-1", Query: "oil filter"}}}
	recs, err := New(repo).List(context.Background(), 5)
	if err != nil || len(recs) != 1 {
		t.Fatalf("List() = %v, %v", recs, err)
	}
	if repo.lastLimit != 5 {
		t.Errorf("limit = %d", repo.lastLimit)
	}
}

func TestList_Error(t *testing.T) {
	if _, err := New(&mockRepo{err: errors.New("boom")}).List(context.Background(), 0); err == nil {
		t.Error("expected error")
	}
}

func TestDeleteClear(t *testing.T) {
	svc := New(&mockRepo{recs: make([]search.HistoryRecord, 3)})
	ctx := context.Background()

	if err := svc.Delete(ctx, "h-2"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if n, err := svc.Clear(ctx); err != nil || n != 3 {
		t.Errorf("Clear() = %d, %v", n, err)
	}
}
