// Package nullable implements a tri-state field for partial updates: a value
// can be absent, explicitly null, or set. Absent fields leave the stored
// column untouched; explicit nulls clear it.
package nullable

import "encoding/json"

// Field wraps a value of type T together with its presence state.
// The zero Field is "absent".
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Of returns a Field carrying the given value.
func Of[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Null returns a Field that is present but explicitly null.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the field was provided at all (value or null).
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the field was provided as an explicit null.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the value and true when the field holds a non-null value.
func (f Field[T]) Get() (T, bool) {
	if !f.set || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Ptr returns a pointer to the value, or nil when the field is absent or
// null. The nil pointer maps to SQL NULL when used as a query argument.
func (f Field[T]) Ptr() *T {
	if !f.set || f.null {
		return nil
	}
	v := f.value
	return &v
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if string(b) == "null" {
		var zero T
		f.value = zero
		f.null = true
		return nil
	}
	f.null = false
	return json.Unmarshal(b, &f.value)
}
