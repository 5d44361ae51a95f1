// Package vehicle describes the vehicle context attached to searches and the user's garage.
package vehicle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain"
)

// MinYear is the oldest model year accepted in the garage.
const MinYear = 1900

// Vehicle is a year/make/model/engine tuple.
type Vehicle struct {
	Year   int    `json:"year"`
	Make   string `json:"make"`
	Model  string `json:"model"`
	Engine string `json:"engine,omitempty"`
}

// New validates and creates a Vehicle. now bounds the model year (next year's models are on sale).
func New(year int, mk, model, engine string, now time.Time) (Vehicle, error) {
	mk = strings.TrimSpace(mk)
	model = strings.TrimSpace(model)
	if year == 0 || mk == "" || model == "" {
		return Vehicle{}, fmt.Errorf("%w: year, make, and model are required", domain.ErrValidation)
	}
	if maxYear := now.Year() + 1; year < MinYear || year > maxYear {
		return Vehicle{}, fmt.Errorf("%w: year must be between %d and %d", domain.ErrValidation, MinYear, maxYear)
	}
	return Vehicle{Year: year, Make: mk, Model: model, Engine: strings.TrimSpace(engine)}, nil
}

// Complete reports whether year, make and model are all set.
func (v Vehicle) Complete() bool {
	return v.Year != 0 && v.Make != "" && v.Model != ""
}

// Describe formats "{year} {make} {model} {engine}", omitting a blank engine.
func (v Vehicle) Describe() string {
	parts := []string{strconv.Itoa(v.Year), v.Make, v.Model}
	if e := strings.TrimSpace(v.Engine); e != "" {
		parts = append(parts, e)
	}
	return strings.Join(parts, " ")
}

// Garaged is a vehicle saved in the user's garage.
type Garaged struct {
	ID string `json:"id"`
	Vehicle
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"created_date"`
}

// EntityID returns the store identifier.
func (g *Garaged) EntityID() string { return g.ID }

// Stamp assigns the identifier and creation time on first create.
func (g *Garaged) Stamp(id string, at time.Time) { g.ID, g.CreatedAt = id, at }

// Created returns the creation time.
func (g *Garaged) Created() time.Time { return g.CreatedAt }
