// Package seed fabricates coherent demo payloads for the report API.
package seed

import "time"

// Config holds configuration for payload generation.
type Config struct {
	BaseURL string        // Base URL of a running service; empty means stdout only
	Reps    int           // Number of sales executives under the manager
	Days    int           // Days of history to fabricate, ending today
	Seed    int64         // Random seed for reproducible payloads
	Timeout time.Duration // HTTP request timeout
	AsOf    string        // Report as-of day; empty means today
}

// Stats summarizes one generation run.
type Stats struct {
	Users      int
	Snapshots  int
	Activities int
	Targets    int
	StartTime  time.Time
	Duration   time.Duration
}
