// Package features holds the feature flags that gate optional API surfaces.
package features

import (
	"fmt"
	"maps"
	"slices"
)

// Feature names a toggleable area of the product.
type Feature string

// Known features.
const (
	Catalog       Feature = "catalog"
	Garage        Feature = "garage"
	Jobs          Feature = "jobs"
	PartsList     Feature = "parts_list"
	SearchHistory Feature = "search_history"
	Home          Feature = "home"
)

var defaults = map[Feature]bool{
	Catalog:       false,
	Garage:        true,
	Jobs:          true,
	PartsList:     true,
	SearchHistory: true,
	Home:          true,
}

// Flags is an immutable set of feature toggles.
type Flags struct {
	enabled map[Feature]bool
}

// New applies overrides on top of the defaults. Unknown names are rejected.
func New(overrides map[string]bool) (Flags, error) {
	enabled := maps.Clone(defaults)
	for name, on := range overrides {
		f := Feature(name)
		if _, ok := defaults[f]; !ok {
			return Flags{}, fmt.Errorf("unknown feature %q", name)
		}
		enabled[f] = on
	}
	return Flags{enabled: enabled}, nil
}

// Defaults returns the flags with no overrides.
func Defaults() Flags {
	return Flags{enabled: maps.Clone(defaults)}
}

// Enabled reports whether f is on. Unknown features are off.
func (f Flags) Enabled(name Feature) bool {
	return f.enabled[name]
}

// All returns a copy of every flag keyed by name.
func (f Flags) All() map[string]bool {
	out := make(map[string]bool, len(f.enabled))
	for k, v := range f.enabled {
		out[string(k)] = v
	}
	return out
}

// Names lists the known features in sorted order.
func Names() []string {
	names := make([]string, 0, len(defaults))
	for k := range defaults {
		names = append(names, string(k))
	}
	slices.Sort(names)
	return names
}
