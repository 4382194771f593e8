package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrBadAsOf     = errors.New("invalid as_of; must be 2006-01-02 or RFC3339")
	ErrBuildReport = errors.New("report build failed")
)
