// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/okian/salespulse/internal/adapters/cache"
	"github.com/okian/salespulse/internal/domain/report"
	"github.com/okian/salespulse/pkg/logger"
	"github.com/okian/salespulse/pkg/metrics"
)

// Service composes the aggregation engine with the memoization cache. Each
// BuildReport call is stateless and independently parallelizable.
type Service struct {
	mu sync.RWMutex

	engine  *report.Engine
	reports *cache.Cache

	// Configuration
	trackingDays    int
	dailyMinimum    int
	defaultWalkIns  int
	defaultClosures int
	scaleThreshold  int
	cacheSize       int
	cacheTTL        time.Duration

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTrackingWindowDays sets the effort-metric window length.
func WithTrackingWindowDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.trackingDays = days
		}
	}
}

// WithDailyWalkInMinimum sets the per-day walk-in minimum.
func WithDailyWalkInMinimum(minimum int) Option {
	return func(s *Service) {
		if minimum > 0 {
			s.dailyMinimum = minimum
		}
	}
}

// WithDefaultTargets sets the monthly fallback targets.
func WithDefaultTargets(walkIns, closures int) Option {
	return func(s *Service) {
		if walkIns > 0 {
			s.defaultWalkIns = walkIns
		}
		if closures > 0 {
			s.defaultClosures = closures
		}
	}
}

// WithScaleThresholdDays sets the scaling cutoff for short windows.
func WithScaleThresholdDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.scaleThreshold = days
		}
	}
}

// WithCacheSize bounds the report memoization cache; zero disables it.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithCacheTTL sets the memoized report expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// Default service configuration constants.
const (
	defaultTrackingDays    = 7
	defaultDailyMinimum    = 1
	defaultWalkInTarget    = 30
	defaultClosureTarget   = 3
	defaultScaleThreshold  = 20
	defaultReportCacheSize = 256
	defaultReportCacheTTL  = 5 * time.Minute
)

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		trackingDays:    defaultTrackingDays,
		dailyMinimum:    defaultDailyMinimum,
		defaultWalkIns:  defaultWalkInTarget,
		defaultClosures: defaultClosureTarget,
		scaleThreshold:  defaultScaleThreshold,
		cacheSize:       defaultReportCacheSize,
		cacheTTL:        defaultReportCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the engine and cache.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.engine = report.NewEngine(
		report.WithTrackingWindowDays(s.trackingDays),
		report.WithDailyWalkInMinimum(s.dailyMinimum),
		report.WithDefaultTargets(s.defaultWalkIns, s.defaultClosures),
		report.WithScaleThresholdDays(s.scaleThreshold),
	)
	if s.cacheSize > 0 {
		s.reports = cache.New(
			cache.WithMaxEntries(s.cacheSize),
			cache.WithTTL(s.cacheTTL),
		)
	}

	s.started = true
	s.logger.Info(ctx, "report service started",
		logger.Int("trackingDays", s.trackingDays),
		logger.Int("dailyMinimum", s.dailyMinimum),
		logger.Int("cacheSize", s.cacheSize),
	)
	return nil
}

// Stop releases service state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.reports = nil
	s.started = false
	s.logger.Info(context.Background(), "report service stopped")
}

// BuildReport computes (or recalls) the report for one input set.
func (s *Service) BuildReport(ctx context.Context, in report.Input) (*report.Report, error) {
	s.mu.RLock()
	engine := s.engine
	reports := s.reports
	s.mu.RUnlock()

	if engine == nil {
		engine = report.NewEngine()
	}

	key := ""
	if reports != nil {
		k, err := cache.Key(in)
		if err != nil {
			// Fall through to a plain build; memoization is an optimization.
			s.logger.Warn(ctx, "report cache key failed", logger.Error(err))
		} else {
			key = k
			if cached, ok := reports.Get(ctx, key); ok {
				metrics.RecordCacheHit()
				s.logger.Debug(ctx, "report cache hit", logger.String("key", key))
				return cached, nil
			}
			metrics.RecordCacheMiss()
		}
	}

	start := time.Now()
	rep, err := engine.Build(ctx, in)
	if err != nil {
		metrics.RecordReportError()
		return nil, err
	}
	metrics.RecordReportBuilt(float64(time.Since(start).Milliseconds()))
	metrics.UpdateVisibleUsers(len(rep.Users))
	metrics.RecordReconciled("snapshot", rep.Quality.SnapshotsUsed, rep.Quality.SnapshotsConsidered-rep.Quality.SnapshotsUsed)
	metrics.RecordReconciled("activity", rep.Quality.ActivitiesUsed, rep.Quality.ActivitiesConsidered-rep.Quality.ActivitiesUsed)

	if reports != nil && key != "" {
		evicted := reports.Put(ctx, key, rep)
		for i := 0; i < evicted; i++ {
			metrics.RecordCacheEviction()
		}
		metrics.UpdateCacheEntries(reports.Len())
	}

	s.logger.Debug(ctx, "report built",
		logger.String("asOf", rep.AsOf),
		logger.Int("users", len(rep.Users)),
		logger.Duration("took", time.Since(start)),
	)
	return rep, nil
}
