package report

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTrackingWindowDays sets the rolling window over which effort metrics
// are measured.
func WithTrackingWindowDays(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.trackingDays = days
		}
	}
}

// WithDailyWalkInMinimum sets the per-day walk-in count required for a day
// to classify as met.
func WithDailyWalkInMinimum(minimum int) Option {
	return func(e *Engine) {
		if minimum > 0 {
			e.dailyMinimum = minimum
		}
	}
}

// WithDefaultTargets sets the fallback monthly targets applied to users
// with no configured target record.
func WithDefaultTargets(walkIns, closures int) Option {
	return func(e *Engine) {
		if walkIns > 0 {
			e.defaults.MonthlyWalkIns = walkIns
		}
		if closures > 0 {
			e.defaults.MonthlyClosures = closures
		}
	}
}

// WithScaleThresholdDays sets the window length below which monthly walk-in
// targets are pro-rated.
func WithScaleThresholdDays(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.scaleThreshold = days
		}
	}
}
