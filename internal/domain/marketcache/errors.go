package marketcache

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrInvalidPriceData flags a snapshot rejected by price validation.
	// Recoverable: the previous snapshot stays in place.
	ErrInvalidPriceData = errors.New("invalid price data")
)
