package savedparts

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/optional"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

// --- Mocks ---

type mockRepo struct {
	saved     []part.Saved
	err       error
	parallel  int
	deleteAll int
}

func (m *mockRepo) Create(_ context.Context, s part.Saved) (part.Saved, error) {
	if m.err != nil {
		return part.Saved{}, m.err
	}
	s.ID = "s-1"
	m.saved = append(m.saved, s)
	return s, nil
}

func (m *mockRepo) List(_ context.Context, _ domain.Order, _ int) ([]part.Saved, error) {
	return m.saved, m.err
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if len(m.saved) == 0 || m.saved[0].ID != id {
		return domain.ErrNotFound
	}
	m.saved = m.saved[1:]
	return nil
}

func (m *mockRepo) DeleteAll(_ context.Context, parallel int) (int, error) {
	m.parallel = parallel
	n := len(m.saved)
	m.saved = nil
	return n, m.err
}

// --- Tests ---

func TestSave(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)
	p := part.Part{Name: "Oil Filter", OEMPartNumber: "FL-500S", MSRPPrice: optional.Of(8.99)}

	s, err := svc.Save(context.Background(), p, "2019 Ford F-150", "buy two")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "s-1" || s.PartName != "Oil Filter" || s.Notes != "buy two" {
		t.Errorf("unexpected saved part: %+v", s)
	}
	if price, _ := s.MSRPPrice.Get(); price != 8.99 {
		t.Errorf("price = %v", price)
	}
}

func TestSave_RequiresOEM(t *testing.T) {
	repo := &mockRepo{}
	_, err := New(repo).Save(context.Background(), part.Part{Name: "Mystery"}, "", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Error("must not store")
	}
}

func TestClear(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)
	ctx := context.Background()
	_, _ = svc.Save(ctx, part.Part{OEMPartNumber: "A"}, "", "")
	_, _ = svc.Save(ctx, part.Part{OEMPartNumber: "B"}, "", "")

	n, err := svc.Clear(ctx)
	if err != nil || n != 2 {
		t.Errorf("Clear() = %d, %v", n, err)
	}
	if repo.parallel != clearParallelism {
		t.Errorf("parallel = %d", repo.parallel)
	}
	list, _ := svc.List(ctx)
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}
}

func TestDelete_NotFound(t *testing.T) {
	if err := New(&mockRepo{}).Delete(context.Background(), "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
