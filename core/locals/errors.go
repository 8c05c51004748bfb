package locals

import "errors"

var (
	ErrAbsent       = errors.New("locals: value absent")
	ErrTypeMismatch = errors.New("locals: type mismatch")
)
