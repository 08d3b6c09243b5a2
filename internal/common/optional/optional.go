// Package optional provides an explicit present/absent wrapper so callers
// must decide what a missing value means instead of reading a zero value.
package optional

import "encoding/json"

// Value holds a T that may be absent.
type Value[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Value[T] {
	return Value[T]{value: v, ok: true}
}

func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr maps nil to None.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (v Value[T]) Present() bool { return v.ok }

func (v Value[T]) Get() (T, bool) { return v.value, v.ok }

// OrElse returns the held value, or def when absent.
func (v Value[T]) OrElse(def T) T {
	if v.ok {
		return v.value
	}
	return def
}

// Ptr returns a pointer to a copy of the value, or nil.
func (v Value[T]) Ptr() *T {
	if !v.ok {
		return nil
	}
	out := v.value
	return &out
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = None[T]()
		return nil
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*v = Some(out)
	return nil
}
