package cache

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrKeyEncoding = errors.New("cache key encoding failed")
)
