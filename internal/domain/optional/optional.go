// Package optional models integration fields that may be present or absent.
//
// The part-lookup integration omits fields or sends null freely. Value makes
// the two states explicit so consumers pick a default instead of relying on
// zero values.
package optional

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Value is either Present(v) or Absent. The zero Value is Absent.
type Value[T any] struct {
	v  T
	ok bool
}

// Of returns a present value.
func Of[T any](v T) Value[T] {
	return Value[T]{v: v, ok: true}
}

// None returns an absent value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr converts a nil-able pointer.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Of(*p)
}

// Get returns the value and whether it is present.
func (o Value[T]) Get() (T, bool) { return o.v, o.ok }

// Present reports whether a value is set.
func (o Value[T]) Present() bool { return o.ok }

// IsZero reports absence. Used by encoding/json's omitzero.
func (o Value[T]) IsZero() bool { return !o.ok }

// OrElse returns the value or def when absent.
func (o Value[T]) OrElse(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Value[T]) Ptr() *T {
	if !o.ok {
		return nil
	}
	v := o.v
	return &v
}

// MarshalJSON encodes Absent as null.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return jsonNull, nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON decodes null as Absent.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = Value[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Of(v)
	return nil
}
