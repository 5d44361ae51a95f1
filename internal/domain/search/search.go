// Package search holds the value types of the part search flow.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/optional"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
)

// Query is free text plus an optional vehicle context.
// The vehicle is kept as given, possibly partial.
type Query struct {
	text    string
	vehicle *vehicle.Vehicle
}

// NewQuery validates the query text.
func NewQuery(text string, v *vehicle.Vehicle) (Query, error) {
	if strings.TrimSpace(text) == "" {
		return Query{}, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}
	q := Query{text: text}
	if v != nil {
		vc := *v
		q.vehicle = &vc
	}
	return q, nil
}

// Text returns the raw query text.
func (q Query) Text() string { return q.text }

// Vehicle returns the vehicle context when year, make and model are all set, or nil.
func (q Query) Vehicle() *vehicle.Vehicle {
	if q.vehicle == nil || !q.vehicle.Complete() {
		return nil
	}
	return q.vehicle
}

// VehicleInfo returns the vehicle description, falling back to the query text.
func (q Query) VehicleInfo() string {
	v := q.Vehicle()
	if v == nil {
		return q.text
	}
	return v.Describe()
}

// SameQuery is the cache key comparison: case-insensitive exact match on raw text.
func SameQuery(a, b string) bool {
	return strings.EqualFold(a, b)
}

// CachedEntry is one offline cache slot.
type CachedEntry struct {
	Query     string      `json:"query"`
	Results   []part.Part `json:"results"`
	Timestamp int64       `json:"timestamp"` // epoch millis
}

// HistoryRecord is a search persisted to the entity store.
type HistoryRecord struct {
	ID            string              `json:"id"`
	Query         string              `json:"query"`
	VehicleYear   optional.Value[int] `json:"vehicle_year,omitzero"`
	VehicleMake   string              `json:"vehicle_make,omitempty"`
	VehicleModel  string              `json:"vehicle_model,omitempty"`
	VehicleEngine string              `json:"vehicle_engine,omitempty"`
	Results       []part.Part         `json:"results"`
	ResultCount   int                 `json:"result_count"`
	CreatedAt     time.Time           `json:"created_date"`
}

// NewHistoryRecord builds a history record for a successful search.
func NewHistoryRecord(q Query, results []part.Part) HistoryRecord {
	rec := HistoryRecord{
		Query:       q.text,
		Results:     results,
		ResultCount: len(results),
	}
	if v := q.vehicle; v != nil {
		if v.Year != 0 {
			rec.VehicleYear = optional.Of(v.Year)
		}
		rec.VehicleMake = v.Make
		rec.VehicleModel = v.Model
		rec.VehicleEngine = v.Engine
	}
	return rec
}

// Outcome is what a single search invocation returns to its caller.
type Outcome struct {
	Query     string      `json:"query"`
	Results   []part.Part `json:"results"`
	FromCache bool        `json:"from_cache"`
	Seq       uint64      `json:"seq"`
}

// State is the displayed search state of a session.
type State struct {
	Query     string      `json:"query"`
	Loading   bool        `json:"loading"`
	Error     string      `json:"error,omitempty"`
	Results   []part.Part `json:"results"`
	FromCache bool        `json:"from_cache"`
	Seq       uint64      `json:"seq"`
}

// EntityID returns the store identifier.
func (r *HistoryRecord) EntityID() string { return r.ID }

// Stamp assigns the identifier and creation time on first create.
func (r *HistoryRecord) Stamp(id string, at time.Time) { r.ID, r.CreatedAt = id, at }

// Created returns the creation time.
func (r *HistoryRecord) Created() time.Time { return r.CreatedAt }
