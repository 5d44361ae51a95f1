package entity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/partpilot/internal/db"
	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/job"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
)

// --- Mocks ---

type mockRecordStore struct {
	mu      sync.Mutex
	records map[string]map[string]db.Record
	putErr  error
}

func newMockRecordStore() *mockRecordStore {
	return &mockRecordStore{records: map[string]map[string]db.Record{}}
}

func (m *mockRecordStore) PutRecord(_ context.Context, collection string, rec db.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	if m.records[collection] == nil {
		m.records[collection] = map[string]db.Record{}
	}
	m.records[collection][rec.ID] = rec
	return nil
}

func (m *mockRecordStore) GetRecord(_ context.Context, collection, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[collection][id]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return rec.Data, nil
}

func (m *mockRecordStore) ListRecords(_ context.Context, collection string, limit int) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := make([]db.Record, 0, len(m.records[collection]))
	for _, r := range m.records[collection] {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([][]byte, len(recs))
	for i := range recs {
		out[i] = recs[i].Data
	}
	return out, nil
}

func (m *mockRecordStore) DeleteRecord(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[collection][id]; !ok {
		return db.ErrKeyNotFound
	}
	delete(m.records[collection], id)
	return nil
}

func newTestJobRepo(t *testing.T) (*Repo[job.Job, *job.Job], *mockRecordStore) {
	t.Helper()
	ms := newMockRecordStore()
	r := New[job.Job](ms, CollectionJobs)

	clock := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	seq := 0
	r.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	r.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return r, ms
}

// --- Tests ---

func TestCreateGet(t *testing.T) {
	r, ms := newTestJobRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, job.Job{Name: "Brake Job", Status: job.StatusPlanned})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "id-1" || created.CreatedAt.IsZero() {
		t.Fatalf("expected stamped job, got %+v", created)
	}
	if _, ok := ms.records["partpilot:jobs"]["id-1"]; !ok {
		t.Error("expected record under prefixed collection")
	}

	got, err := r.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Brake Job" || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("unexpected job: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	r, _ := newTestJobRepo(t)
	if _, err := r.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_StoreError(t *testing.T) {
	r, ms := newTestJobRepo(t)
	ms.putErr = errors.New("conn refused")

	_, err := r.Create(context.Background(), job.Job{Name: "x"})
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestList_Orders(t *testing.T) {
	r, _ := newTestJobRepo(t)
	ctx := context.Background()

	for _, n := range []string{"first", "second", "third"} {
		if _, err := r.Create(ctx, job.Job{Name: n}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	newest, err := r.List(ctx, domain.NewestFirst, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(newest) != 2 || newest[0].Name != "third" || newest[1].Name != "second" {
		t.Errorf("unexpected newest-first: %+v", names(newest))
	}

	oldest, err := r.List(ctx, domain.OldestFirst, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(oldest) != 2 || oldest[0].Name != "first" || oldest[1].Name != "second" {
		t.Errorf("unexpected oldest-first: %+v", names(oldest))
	}

	all, _ := r.List(ctx, domain.NewestFirst, 0)
	if len(all) != 3 {
		t.Errorf("expected 3, got %d", len(all))
	}
}

func TestUpdate_PreservesIdentity(t *testing.T) {
	r, _ := newTestJobRepo(t)
	ctx := context.Background()

	created, _ := r.Create(ctx, job.Job{Name: "Brake Job", Status: job.StatusPlanned})

	updated, err := r.Update(ctx, created.ID, func(j *job.Job) error {
		j.ID = "hijack"
		j.CreatedAt = time.Time{}
		return j.Transition(job.StatusInProgress)
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("identity changed: %+v", updated)
	}

	got, _ := r.Get(ctx, created.ID)
	if got.Status != job.StatusInProgress {
		t.Errorf("status = %s, want in_progress", got.Status)
	}
}

func TestUpdate_FnErrorNotPersisted(t *testing.T) {
	r, _ := newTestJobRepo(t)
	ctx := context.Background()

	created, _ := r.Create(ctx, job.Job{Name: "x", Status: job.StatusPlanned})
	_, err := r.Update(ctx, created.ID, func(j *job.Job) error {
		j.Name = "changed"
		return j.Transition(job.StatusCompleted)
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	got, _ := r.Get(ctx, created.ID)
	if got.Name != "x" {
		t.Errorf("failed update must not persist, got %q", got.Name)
	}
}

func TestDelete(t *testing.T) {
	ms := newMockRecordStore()
	r := New[vehicle.Garaged](ms, CollectionVehicles)
	ctx := context.Background()

	v, err := r.Create(ctx, vehicle.Garaged{Vehicle: vehicle.Vehicle{Year: 2019, Make: "Ford", Model: "F-150"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := r.Delete(ctx, v.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.Delete(ctx, v.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func names(jobs []job.Job) []string {
	out := make([]string, len(jobs))
	for i := range jobs {
		out[i] = jobs[i].Name
	}
	return out
}

func TestDeleteAll(t *testing.T) {
	r, ms := newTestJobRepo(t)
	ctx := context.Background()
	for i := range 7 {
		if _, err := r.Create(ctx, job.Job{Name: fmt.Sprintf("job %d", i)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	n, err := r.DeleteAll(ctx, 3)
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n != 7 {
		t.Errorf("deleted = %d, want 7", n)
	}
	if len(ms.records["partpilot:jobs"]) != 0 {
		t.Errorf("expected empty collection, %d left", len(ms.records["partpilot:jobs"]))
	}

	n, err = r.DeleteAll(ctx, 0)
	if err != nil || n != 0 {
		t.Errorf("empty collection: n=%d err=%v", n, err)
	}
}
