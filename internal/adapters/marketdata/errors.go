package marketdata

import "errors"

// Sentinel error kinds for this package.
var (
	ErrListFailed  = errors.New("market listing failed")
	ErrPriceFailed = errors.New("market price lookup failed")
)
