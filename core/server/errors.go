package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server address is required")
	ErrInvalidWorkers       = errors.New("worker count must not be negative")
	ErrServerAlreadyRunning = errors.New("server is already running")
)
