// Package job defines repair jobs and their status lifecycle.
//
// Valid status graph:
//
//	PLANNED ◄──► IN_PROGRESS ◄──► COMPLETED
//
// A completed job may be re-opened; a planned job cannot jump straight to completed.
package job

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/optional"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

// Status values stored with each job.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var validTransitions = map[Status][]Status{
	StatusPlanned:    {StatusInProgress},
	StatusInProgress: {StatusCompleted, StatusPlanned},
	StatusCompleted:  {StatusInProgress},
}

// ParseStatus converts a raw string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPlanned, StatusInProgress, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown job status %q", domain.ErrValidation, s)
}

// IsTransitionAllowed reports whether moving from -> to is permitted.
func IsTransitionAllowed(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Line is one part recorded on a job.
type Line struct {
	PartName      string                  `json:"part_name"`
	OEMPartNumber string                  `json:"oem_part_number"`
	MSRPPrice     optional.Value[float64] `json:"msrp_price,omitzero"`
	Purchased     bool                    `json:"purchased"`
}

// Job is a user-defined repair project.
type Job struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	VehicleInfo   string    `json:"vehicle_info"`
	Status        Status    `json:"status"`
	Parts         []Line    `json:"parts"`
	EstimatedCost float64   `json:"estimated_cost"`
	CreatedAt     time.Time `json:"created_date"`
	UpdatedAt     time.Time `json:"updated_date,omitzero"`
}

// New builds a planned job from cart parts. The name must not be blank.
func New(name, vehicleInfo string, parts []part.Part) (Job, error) {
	if strings.TrimSpace(name) == "" {
		return Job{}, fmt.Errorf("%w: job name is required", domain.ErrValidation)
	}

	lines := make([]Line, len(parts))
	for i := range parts {
		lines[i] = Line{
			PartName:      parts[i].Name,
			OEMPartNumber: parts[i].OEMPartNumber,
			MSRPPrice:     parts[i].MSRPPrice,
		}
	}

	return Job{
		Name:          name,
		VehicleInfo:   vehicleInfo,
		Status:        StatusPlanned,
		Parts:         lines,
		EstimatedCost: part.SumPrices(parts),
	}, nil
}

// Transition moves the job to a new status.
func (j *Job) Transition(to Status) error {
	if j.Status == to {
		return nil
	}
	if !IsTransitionAllowed(j.Status, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, j.Status, to)
	}
	j.Status = to
	return nil
}

// MarkPurchased flips the purchased flag of the line with the given OEM number.
func (j *Job) MarkPurchased(oemPartNumber string, purchased bool) error {
	for i := range j.Parts {
		if j.Parts[i].OEMPartNumber == oemPartNumber {
			j.Parts[i].Purchased = purchased
			return nil
		}
	}
	return fmt.Errorf("part %q on job %s: %w", oemPartNumber, j.ID, domain.ErrNotFound)
}

// PurchasedCount returns how many lines are marked purchased.
func (j *Job) PurchasedCount() int {
	n := 0
	for i := range j.Parts {
		if j.Parts[i].Purchased {
			n++
		}
	}
	return n
}

// EntityID returns the store identifier.
func (j *Job) EntityID() string { return j.ID }

// Stamp assigns the identifier and creation time on first create.
func (j *Job) Stamp(id string, at time.Time) { j.ID, j.CreatedAt = id, at }

// Created returns the creation time.
func (j *Job) Created() time.Time { return j.CreatedAt }
