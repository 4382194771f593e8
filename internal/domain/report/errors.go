package report

import "errors"

// Sentinel kinds for report errors.
var (
	ErrAsOfRequired = errors.New("as-of date is required")
)
