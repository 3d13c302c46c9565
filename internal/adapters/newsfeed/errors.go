package newsfeed

import "errors"

// Sentinel error kinds for this package.
var (
	ErrSearchFailed = errors.New("news search failed")
	ErrNoAPIKey     = errors.New("news api key not configured")
)
