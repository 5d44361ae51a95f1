package lookup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	"github.com/kailas-cloud/partpilot/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterDomainMetrics()
	os.Exit(m.Run())
}

type mockLookup struct {
	result domain.LookupResult
	err    error
	calls  int
}

func (m *mockLookup) Lookup(_ context.Context, _ string) (domain.LookupResult, error) {
	m.calls++
	return m.result, m.err
}

func TestInstrumented_Success(t *testing.T) {
	inner := &mockLookup{result: domain.LookupResult{Parts: []part.Part{{OEMPartNumber: "A"}}}}
	p := NewInstrumented(inner, "test", "test-model", nil, zap.NewNop())

	res, err := p.Lookup(context.Background(), "brake pads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(res.Parts))
	}
}

func TestInstrumented_WritesRequestUsage(t *testing.T) {
	inner := &mockLookup{result: domain.LookupResult{TotalTokens: 500, PromptTokens: 120}}
	p := NewInstrumented(inner, "test", "test-model", nil, zap.NewNop())

	ctx, u := domain.NewContextWithUsage(context.Background())
	if _, err := p.Lookup(ctx, "q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.Used || u.TotalTokens != 500 {
		t.Errorf("expected usage collected, got %+v", u)
	}
}

func TestInstrumented_Error(t *testing.T) {
	inner := &mockLookup{err: fmt.Errorf("upstream: %w", domain.ErrIntegration)}
	p := NewInstrumented(inner, "test", "test-model", nil, zap.NewNop())

	_, err := p.Lookup(context.Background(), "q")
	if !errors.Is(err, domain.ErrIntegration) {
		t.Fatalf("expected ErrIntegration, got %v", err)
	}
}

func TestInstrumented_BudgetRejection(t *testing.T) {
	budget := NewBudgetTracker("test-budget", 100, 0, BudgetActionReject, zap.NewNop())
	budget.Record(100)

	inner := &mockLookup{}
	p := NewInstrumented(inner, "test-budget", "test-model", budget, zap.NewNop())

	_, err := p.Lookup(context.Background(), "q")
	if !errors.Is(err, domain.ErrLookupQuotaExceeded) {
		t.Fatalf("expected ErrLookupQuotaExceeded, got %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("integration must not be called over budget, got %d calls", inner.calls)
	}
}

func TestInstrumented_RecordsBudget(t *testing.T) {
	budget := NewBudgetTracker("test-record", 1000000, 10000000, BudgetActionReject, zap.NewNop())
	inner := &mockLookup{result: domain.LookupResult{TotalTokens: 500}}
	p := NewInstrumented(inner, "test-record", "test-model", budget, zap.NewNop())

	initialDaily := budget.RemainingDaily()
	if _, err := p.Lookup(context.Background(), "q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := budget.RemainingDaily(); got != initialDaily-500 {
		t.Errorf("expected daily remaining to drop by 500, got %d -> %d", initialDaily, got)
	}
	if got := budget.Used().DailyCalls; got != 1 {
		t.Errorf("expected 1 call, got %d", got)
	}
}
