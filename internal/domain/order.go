package domain

import "fmt"

// Order selects list ordering by creation time.
type Order int

// Orderings supported by entity listings.
const (
	NewestFirst Order = iota // "-created_date"
	OldestFirst              // "created_date"
)

// ParseOrder maps the "-created_date" / "created_date" sort expressions.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "-created_date":
		return NewestFirst, nil
	case "created_date":
		return OldestFirst, nil
	}
	return NewestFirst, fmt.Errorf("%w: unsupported sort %q", ErrValidation, s)
}
