package model

import (
	"bytes"
	"encoding/json"
)

// Field is one column of a sparse update. The zero value means "not
// supplied": the column is left untouched. Set carries a new value and Null
// clears a nullable column. Decoding JSON keeps the same three states:
// an absent key leaves the field unset, an explicit null clears it.
type Field[T any] struct {
	set   bool
	null  bool
	value T
}

// Set returns a field that assigns v.
func Set[T any](v T) Field[T] { return Field[T]{set: true, value: v} }

// Null returns a field that clears the column.
func Null[T any]() Field[T] { return Field[T]{set: true, null: true} }

// IsSet reports whether the field was supplied at all.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the field was supplied as an explicit clear.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the assigned value. ok is false when the field is unset or null.
func (f Field[T]) Get() (v T, ok bool) {
	if !f.set || f.null {
		return v, false
	}
	return f.value, true
}

// Arg returns the statement argument for the field: nil for a clear,
// the value otherwise.
func (f Field[T]) Arg() any {
	if f.null {
		return nil
	}
	return f.value
}

// UnmarshalJSON marks the field present; a JSON null leaves it null.
func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		f.null, f.value = true, zero
		return nil
	}
	f.null = false
	return json.Unmarshal(b, &f.value)
}
