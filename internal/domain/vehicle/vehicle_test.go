package vehicle

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		v    Vehicle
		want string
	}{
		{Vehicle{Year: 2019, Make: "Ford", Model: "F-150", Engine: "5.0L V8"}, "2019 Ford F-150 5.0L V8"},
		{Vehicle{Year: 2019, Make: "Ford", Model: "F-150"}, "2019 Ford F-150"},
		{Vehicle{Year: 2019, Make: "Ford", Model: "F-150", Engine: "   "}, "2019 Ford F-150"},
	}
	for _, tc := range tests {
		if got := tc.v.Describe(); got != tc.want {
			t.Errorf("Describe() = %q, want %q", got, tc.want)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	if _, err := New(2019, "Ford", "F-150", "", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := New(2027, "Ford", "F-150", "", now); err != nil {
		t.Fatalf("next model year should be accepted: %v", err)
	}

	bad := []struct {
		year        int
		mk, model   string
		description string
	}{
		{0, "Ford", "F-150", "missing year"},
		{2019, " ", "F-150", "blank make"},
		{2019, "Ford", "", "missing model"},
		{1899, "Ford", "Model T", "too old"},
		{2028, "Ford", "F-150", "too new"},
	}
	for _, tc := range bad {
		if _, err := New(tc.year, tc.mk, tc.model, "", now); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.description, err)
		}
	}
}

func TestComplete(t *testing.T) {
	if (Vehicle{Year: 2019, Make: "Ford"}).Complete() {
		t.Error("vehicle without model should not be complete")
	}
	if !(Vehicle{Year: 2019, Make: "Ford", Model: "F-150"}).Complete() {
		t.Error("expected complete vehicle")
	}
}
