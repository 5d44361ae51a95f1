package partpilot

import (
	"context"
	"sync"

	"github.com/kailas-cloud/partpilot/internal/domain"
	domjob "github.com/kailas-cloud/partpilot/internal/domain/job"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
	domusage "github.com/kailas-cloud/partpilot/internal/domain/usage"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
	healthuc "github.com/kailas-cloud/partpilot/internal/usecase/health"
	searchuc "github.com/kailas-cloud/partpilot/internal/usecase/search"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, tr *searchuc.Tracker, text string, v *vehicle.Vehicle) (domsearch.Outcome, error)
	waited   bool
}

func (m *mockSearchUC) Search(
	ctx context.Context, tr *searchuc.Tracker, text string, v *vehicle.Vehicle,
) (domsearch.Outcome, error) {
	return m.searchFn(ctx, tr, text, v)
}

func (m *mockSearchUC) Wait() { m.waited = true }

// --- cacheUseCase mock ---

type mockCacheUC struct {
	entriesFn func(ctx context.Context) ([]domsearch.CachedEntry, error)
	clearFn   func(ctx context.Context) error
}

func (m *mockCacheUC) Entries(ctx context.Context) ([]domsearch.CachedEntry, error) {
	return m.entriesFn(ctx)
}

func (m *mockCacheUC) Clear(ctx context.Context) error {
	return m.clearFn(ctx)
}

// --- jobUseCase mock ---

type mockJobUC struct {
	saveFn      func(ctx context.Context, name, vehicleInfo string, parts []part.Part) (domjob.Job, error)
	listFn      func(ctx context.Context) ([]domjob.Job, error)
	getFn       func(ctx context.Context, id string) (domjob.Job, error)
	statusFn    func(ctx context.Context, id string, status domjob.Status) (domjob.Job, error)
	purchasedFn func(ctx context.Context, id, oem string, purchased bool) (domjob.Job, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (m *mockJobUC) Save(ctx context.Context, name, vehicleInfo string, parts []part.Part) (domjob.Job, error) {
	return m.saveFn(ctx, name, vehicleInfo, parts)
}

func (m *mockJobUC) List(ctx context.Context) ([]domjob.Job, error) {
	return m.listFn(ctx)
}

func (m *mockJobUC) Get(ctx context.Context, id string) (domjob.Job, error) {
	return m.getFn(ctx, id)
}

func (m *mockJobUC) SetStatus(ctx context.Context, id string, status domjob.Status) (domjob.Job, error) {
	return m.statusFn(ctx, id, status)
}

func (m *mockJobUC) SetPartPurchased(ctx context.Context, id, oem string, purchased bool) (domjob.Job, error) {
	return m.purchasedFn(ctx, id, oem, purchased)
}

func (m *mockJobUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}

// --- usageUseCase mock ---

type mockUsageUC struct {
	report domusage.Report
}

func (m *mockUsageUC) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	r := m.report
	r.Period = period
	return r
}

// --- connectivitySwitch mock ---

type mockConn struct {
	online bool
}

func (m *mockConn) Online() bool { return m.online }

func (m *mockConn) Force(state *bool) {
	if state != nil {
		m.online = *state
	}
}

// --- Lookup fake ---

type fakeLookup struct {
	mu     sync.Mutex
	parts  []part.Part
	err    error
	calls  int
	health error
}

func (f *fakeLookup) Lookup(_ context.Context, _ string) (domain.LookupResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return domain.LookupResult{}, f.err
	}
	return domain.LookupResult{Parts: f.parts, TotalTokens: 100}, nil
}

func (f *fakeLookup) HealthCheck(_ context.Context) error { return f.health }
