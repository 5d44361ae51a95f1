package search

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
)

func TestNewQuery_RejectsBlank(t *testing.T) {
	for _, text := range []string{"", "  ", "\n"} {
		if _, err := NewQuery(text, nil); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("NewQuery(%q) err = %v", text, err)
		}
	}
}

func TestNewQuery_IncompleteVehicleNotDescribed(t *testing.T) {
	q, err := NewQuery("brake pads", &vehicle.Vehicle{Year: 2019, Make: "Ford"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Vehicle() != nil {
		t.Error("incomplete vehicle must not be described")
	}
	if q.VehicleInfo() != "brake pads" {
		t.Errorf("VehicleInfo() = %q", q.VehicleInfo())
	}
}

func TestVehicleInfo(t *testing.T) {
	q, _ := NewQuery("brake pads", &vehicle.Vehicle{Year: 2019, Make: "Ford", Model: "F-150", Engine: "3.5L"})
	if got := q.VehicleInfo(); got != "2019 Ford F-150 3.5L" {
		t.Errorf("VehicleInfo() = %q", got)
	}
}

func TestSameQuery(t *testing.T) {
	if !SameQuery("Oil Filter", "oil filter") {
		t.Error("expected case-insensitive match")
	}
	if SameQuery("oil filter ", "oil filter") {
		t.Error("trailing space must not match")
	}
	if SameQuery("oil", "oil filter") {
		t.Error("prefix must not match")
	}
}

func TestNewHistoryRecord(t *testing.T) {
	q, _ := NewQuery("spark plugs", &vehicle.Vehicle{Year: 2015, Make: "Toyota", Model: "Camry"})
	rec := NewHistoryRecord(q, []part.Part{{OEMPartNumber: "A"}})

	if y, ok := rec.VehicleYear.Get(); !ok || y != 2015 {
		t.Errorf("VehicleYear = %v, %v", y, ok)
	}
	if rec.VehicleMake != "Toyota" || rec.VehicleModel != "Camry" || rec.ResultCount != 1 {
		t.Errorf("unexpected record: %+v", rec)
	}

	plain, _ := NewQuery("spark plugs", nil)
	if NewHistoryRecord(plain, nil).VehicleYear.Present() {
		t.Error("expected absent vehicle year without vehicle")
	}
}

func TestNewHistoryRecord_PartialVehicle(t *testing.T) {
	q, _ := NewQuery("oil filter", &vehicle.Vehicle{Make: "Ford", Model: "F-150", Engine: "5.0L"})
	rec := NewHistoryRecord(q, nil)

	if rec.VehicleYear.Present() {
		t.Error("expected absent vehicle year")
	}
	if rec.VehicleMake != "Ford" || rec.VehicleModel != "F-150" || rec.VehicleEngine != "5.0L" {
		t.Errorf("unexpected record: %+v", rec)
	}
}
