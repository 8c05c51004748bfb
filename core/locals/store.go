package locals

import (
	"fmt"
	"reflect"
)

// Store is the per-request key-value storage.
// The zero value is ready to use.
type Store struct {
	values   map[string]any
	param    any
	hasParam bool
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Len returns the number of keyed values currently stored.
func (s *Store) Len() int {
	return len(s.values)
}

// Has reports whether a keyed value is stored under key.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// HasParam reports whether the param slot is filled.
func (s *Store) HasParam() bool {
	return s.hasParam
}

// Delete removes the value stored under key, if any.
func (s *Store) Delete(key string) {
	delete(s.values, key)
}

// Reset drops every stored value, including the param slot.
func (s *Store) Reset() {
	clear(s.values)
	s.param = nil
	s.hasParam = false
}

// Set stores v under key, replacing any previous value.
func Set[T any](s *Store, key string, v T) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = v
}

// Take returns the value stored under key and removes it.
// It returns ErrAbsent if nothing is stored and ErrTypeMismatch if the stored
// value is not a T; in the mismatch case the value is kept.
func Take[T any](s *Store, key string) (T, error) {
	v, err := Peek[T](s, key)
	if err != nil {
		return v, err
	}
	delete(s.values, key)
	return v, nil
}

// Peek is like Take but leaves the value in the store.
func Peek[T any](s *Store, key string) (T, error) {
	var zero T
	raw, ok := s.values[key]
	if !ok {
		return zero, fmt.Errorf("%w: key %q", ErrAbsent, key)
	}
	v, ok := as[T](raw)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T, want %s", ErrTypeMismatch, key, raw, reflect.TypeFor[T]())
	}
	return v, nil
}

// SetParam fills the anonymous param slot with v.
func SetParam[T any](s *Store, v T) {
	s.param = v
	s.hasParam = true
}

// TakeParam returns the param slot value and empties the slot.
// Errors follow the same rules as Take.
func TakeParam[T any](s *Store) (T, error) {
	var zero T
	if !s.hasParam {
		return zero, fmt.Errorf("%w: param", ErrAbsent)
	}
	v, ok := as[T](s.param)
	if !ok {
		return zero, fmt.Errorf("%w: param holds %T, want %s", ErrTypeMismatch, s.param, reflect.TypeFor[T]())
	}
	s.param = nil
	s.hasParam = false
	return v, nil
}

// as converts raw to T. A nil stored through an interface type loses its
// type, so it matches any interface T as that type's nil.
func as[T any](raw any) (T, bool) {
	if v, ok := raw.(T); ok {
		return v, true
	}
	var zero T
	if raw == nil && reflect.TypeFor[T]().Kind() == reflect.Interface {
		return zero, true
	}
	return zero, false
}
