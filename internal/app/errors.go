package app

import "errors"

// Sentinel error kinds for this package.
var (
	ErrAlreadyStarted = errors.New("service already started")
	ErrNotStarted     = errors.New("service not started")
)
