package llm

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNoAPIKey      = errors.New("reasoning api key not configured")
	ErrRequestFailed = errors.New("reasoning request failed")
	ErrBadVerdict    = errors.New("unparseable reasoning verdict")
)
