// Package part holds the part payload returned by the lookup integration.
package part

import (
	"math"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain/optional"
)

// Difficulty labels used by the lookup integration. Values are passed through
// unvalidated; these are the ones the prompt asks for.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Supersession describes a manufacturer replacing an older part number.
type Supersession struct {
	NewPartNumber string `json:"new_part_number"`
	Reason        string `json:"reason"`
}

// PurchaseLink is one retailer offer for a part.
type PurchaseLink struct {
	Store        string                  `json:"store"`
	URL          string                  `json:"url"`
	Price        optional.Value[float64] `json:"price,omitzero"`
	Availability optional.Value[string]  `json:"availability,omitzero"`
	Shipping     optional.Value[string]  `json:"shipping,omitzero"`
}

// TorqueSpec is a fastener torque value in both unit systems.
type TorqueSpec struct {
	Component string  `json:"component"`
	FtLbs     float64 `json:"ft_lbs"`
	Nm        float64 `json:"nm"`
}

// Part is one part candidate. Entirely supplied by the lookup integration.
type Part struct {
	Name              string                       `json:"part_name"`
	OEMPartNumber     string                       `json:"oem_part_number"`
	MSRPPrice         optional.Value[float64]      `json:"msrp_price,omitzero"`
	Description       string                       `json:"description"`
	Category          string                       `json:"category"`
	Manufacturer      string                       `json:"manufacturer"`
	IsGenuineOEM      bool                         `json:"is_genuine_oem"`
	FitmentNote       optional.Value[string]       `json:"fitment_note,omitzero"`
	Supersession      optional.Value[Supersession] `json:"supersession,omitzero"`
	PurchaseLinks     []PurchaseLink               `json:"purchase_links"`
	InstallationSteps []string                     `json:"installation_steps"`
	TorqueSpecs       []TorqueSpec                 `json:"torque_specs"`
	Difficulty        string                       `json:"difficulty"`
	EstimatedTime     string                       `json:"estimated_time"`
	ToolsNeeded       []string                     `json:"tools_needed"`
}

// Price returns the MSRP, or 0 when the integration did not supply one.
func (p *Part) Price() float64 {
	return p.MSRPPrice.OrElse(0)
}

// Normalize replaces absent arrays with empty ones and drops an empty supersession.
func (p Part) Normalize() Part {
	if p.PurchaseLinks == nil {
		p.PurchaseLinks = []PurchaseLink{}
	}
	if p.InstallationSteps == nil {
		p.InstallationSteps = []string{}
	}
	if p.TorqueSpecs == nil {
		p.TorqueSpecs = []TorqueSpec{}
	}
	if p.ToolsNeeded == nil {
		p.ToolsNeeded = []string{}
	}
	if s, ok := p.Supersession.Get(); ok && s.NewPartNumber == "" {
		p.Supersession = optional.None[Supersession]()
	}
	return p
}

// NormalizeAll normalizes every part. A nil list becomes an empty one.
func NormalizeAll(parts []Part) []Part {
	out := make([]Part, len(parts))
	for i := range parts {
		out[i] = parts[i].Normalize()
	}
	return out
}

// SumPrices adds MSRP prices (absent counts as 0) rounded to cents.
func SumPrices(parts []Part) float64 {
	var sum float64
	for i := range parts {
		sum += parts[i].Price()
	}
	return RoundCents(sum)
}

// RoundCents rounds a currency amount to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Saved is a part bookmarked by the user.
type Saved struct {
	ID            string                  `json:"id"`
	PartName      string                  `json:"part_name"`
	OEMPartNumber string                  `json:"oem_part_number"`
	MSRPPrice     optional.Value[float64] `json:"msrp_price,omitzero"`
	VehicleInfo   string                  `json:"vehicle_info"`
	Notes         string                  `json:"notes"`
	CreatedAt     time.Time               `json:"created_date"`
}

// NewSaved snapshots the fields of p worth keeping in a saved-parts list.
func NewSaved(p *Part, vehicleInfo, notes string) Saved {
	return Saved{
		PartName:      p.Name,
		OEMPartNumber: p.OEMPartNumber,
		MSRPPrice:     p.MSRPPrice,
		VehicleInfo:   vehicleInfo,
		Notes:         notes,
	}
}

// EntityID returns the store identifier.
func (s *Saved) EntityID() string { return s.ID }

// Stamp assigns the identifier and creation time on first create.
func (s *Saved) Stamp(id string, at time.Time) { s.ID, s.CreatedAt = id, at }

// Created returns the creation time.
func (s *Saved) Created() time.Time { return s.CreatedAt }
