package server

import "errors"

// Server-specific errors
var (
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrNoSnapshot           = errors.New("no snapshot published yet")
	ErrUnknownFormat        = errors.New("unknown frame format")
)
