package domain

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes an absent value from an explicit null.
//
//	Optional[string]{}                       absent
//	Optional[string]{Set: true}              null
//	Optional[string]{Set: true, Value: &v}   v
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns a present Optional holding null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// OptionalOf returns Null when p is nil and Some(*p) otherwise.
func OptionalOf[T any](p *T) Optional[T] {
	if p == nil {
		return Null[T]()
	}
	return Some(*p)
}

// IsNull reports whether the value was explicitly set to null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Value == nil
}

// Ptr returns a copy of the held value, or nil.
func (o Optional[T]) Ptr() *T {
	if o.Value == nil {
		return nil
	}
	v := *o.Value
	return &v
}

// UnmarshalJSON marks the field as present. It is only called for keys that
// appear in the document, which is what makes absence observable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON writes the held value or null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
