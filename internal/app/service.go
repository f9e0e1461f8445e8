// Package service loads the country record set and answers the table and
// dashboard queries used by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/okian/countrydash/internal/adapters/repository"
	"github.com/okian/countrydash/internal/adapters/source"
	"github.com/okian/countrydash/internal/domain/chart"
	"github.com/okian/countrydash/internal/domain/filter"
	"github.com/okian/countrydash/internal/domain/sorting"
	"github.com/okian/countrydash/internal/domain/stats"
	"github.com/okian/countrydash/internal/domain/table"
	"github.com/okian/countrydash/pkg/logger"
	"github.com/okian/countrydash/pkg/metrics"
)

const defaultRefreshTimeout = 30 * time.Second

// ErrInvalidSchedule is returned by Start when the refresh schedule cannot be parsed.
var ErrInvalidSchedule = errors.New("invalid refresh schedule")

// Service owns the current record snapshot.
type Service struct {
	mu sync.RWMutex

	source source.Source
	store  repository.Store
	fields source.Fields

	schedule       string
	refreshTimeout time.Duration
	cron           *cron.Cron

	// State
	started     bool
	lastErr     error
	lastAttempt time.Time

	logger logger.Logger
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

// WithSource sets where records are fetched from.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore sets the snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithFields overrides the field selection sent upstream.
func WithFields(fields source.Fields) Option {
	return func(s *Service) {
		if len(fields) > 0 {
			s.fields = fields
		}
	}
}

// WithRefreshSchedule enables periodic reloads on a standard cron
// expression. Empty disables them.
func WithRefreshSchedule(spec string) Option {
	return func(s *Service) {
		s.schedule = spec
	}
}

// WithRefreshTimeout bounds each scheduled reload.
func WithRefreshTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshTimeout = d
		}
	}
}

// New constructs a Service. Without WithSource it fetches from the public
// REST Countries API; without WithStore it keeps records in memory.
func New(opts ...Option) *Service {
	s := &Service{
		fields:         source.AllFields,
		refreshTimeout: defaultRefreshTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.source == nil {
		s.source = source.New(source.WithLogger(s.logger))
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	return s
}

// Start performs the initial load and, when configured, schedules reloads.
// A failed load is logged and leaves the current (initially empty) snapshot
// in place; only an unusable schedule is returned as an error.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	var c *cron.Cron
	if s.schedule != "" {
		c = cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{s.logger})))
		if _, err := c.AddFunc(s.schedule, s.scheduledRefresh); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("%w: %w", ErrInvalidSchedule, err)
		}
	}
	s.cron = c
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting country service...",
		logger.String("fields", s.fields.String()),
		logger.String("schedule", s.schedule),
	)

	if err := s.Refresh(ctx); err != nil {
		s.logger.Error(ctx, "initial load failed, serving empty data set", logger.Error(err))
	}

	if c != nil {
		c.Start()
	}
	s.logger.Info(ctx, "country service started", logger.Int("records", s.store.Count(ctx)))
	return nil
}

// Stop halts scheduled reloads and waits for a running one to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	c := s.cron
	s.cron = nil
	s.started = false
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	s.logger.Info(context.Background(), "country service stopped")
}

// Refresh fetches the record set and publishes it as the current snapshot.
// On failure the previous snapshot stays current.
func (s *Service) Refresh(ctx context.Context) error {
	start := time.Now()
	records, err := s.source.Fetch(ctx, s.fields)
	if err == nil {
		_, err = s.store.Replace(ctx, records)
	}

	s.mu.Lock()
	s.lastAttempt = start
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.logger.Info(ctx, "country records loaded",
		logger.Int("records", len(records)),
		logger.Int64("durationMs", time.Since(start).Milliseconds()),
	)
	return nil
}

func (s *Service) scheduledRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.refreshTimeout)
	defer cancel()
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "scheduled refresh failed", logger.Error(err))
	}
}

// Table filters and sorts the current records into display rows.
func (s *Service) Table(ctx context.Context, c filter.Criteria, spec sorting.Spec) (table.View, error) {
	defer observe("table", time.Now())

	view, err := table.Build(s.store.Snapshot(ctx).Records, c, spec)
	if err != nil {
		return table.View{}, err
	}
	if view.Invalid {
		metrics.RecordInvalidFilter()
		s.logger.Debug(ctx, "population range rejected",
			logger.Int64("min", c.MinPopulation),
			logger.Any("max", c.MaxPopulation),
		)
	}
	return view, nil
}

// Defaults returns the filter inputs restored by a reset.
func (s *Service) Defaults(ctx context.Context) filter.Inputs {
	defer observe("defaults", time.Now())
	return filter.Defaults(s.store.Snapshot(ctx).Records)
}

// Dashboard aggregates the full record set.
func (s *Service) Dashboard(ctx context.Context) stats.Stats {
	defer observe("aggregate", time.Now())
	return stats.Aggregate(s.store.Snapshot(ctx).Records)
}

// Chart returns the top countries for metric.
func (s *Service) Chart(ctx context.Context, metric chart.Metric) chart.Series {
	defer observe("chart", time.Now())
	return chart.Project(s.store.Snapshot(ctx).Records, metric)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.store.Snapshot(context.Background())
	out := map[string]interface{}{
		"started":         s.started,
		"fields":          s.fields.String(),
		"refreshSchedule": s.schedule,
		"records":         len(snap.Records),
		"loaded":          snap.Loaded(),
		"version":         snap.Version,
	}
	if snap.Loaded() {
		out["loadedAt"] = snap.LoadedAt.UTC().Format(time.RFC3339)
	}
	if !s.lastAttempt.IsZero() {
		out["lastAttempt"] = s.lastAttempt.UTC().Format(time.RFC3339)
	}
	if s.lastErr != nil {
		out["lastError"] = s.lastErr.Error()
	}

	metrics.UpdateRepositoryRecordsTotal(len(snap.Records))
	return out
}

func observe(operation string, start time.Time) {
	metrics.RecordPipelineLatency(operation, float64(time.Since(start).Microseconds())/1000)
}

// cronLogger routes cron's internal logging through the service logger.
type cronLogger struct {
	l logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(context.Background(), "cron: "+msg, kvFields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(context.Background(), "cron: "+msg, append(kvFields(keysAndValues), logger.Error(err))...)
}

func kvFields(kv []interface{}) []logger.Field {
	out := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, logger.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return out
}
