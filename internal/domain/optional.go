package domain

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a field was supplied in a partial update and,
// if it was, whether it was an explicit JSON null.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns an Optional that was supplied as an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field was present at all.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// IsNull reports whether the field was present as an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.set && o.null
}

// Get returns the value and whether a non-null value was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// UnmarshalJSON marks the field as present. encoding/json only calls it for
// keys that appear in the document, which is what gives absence its meaning.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON encodes the held value, or null when absent or null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
