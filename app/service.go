package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/greenslot/config"
	coremetrics "github.com/kilianp07/greenslot/core/metrics"
	"github.com/kilianp07/greenslot/core/model"
	"github.com/kilianp07/greenslot/core/scheduler"
	"github.com/kilianp07/greenslot/core/snapshot"
	"github.com/kilianp07/greenslot/infra/logger"
	"github.com/kilianp07/greenslot/infra/metrics"
	infrasnapshot "github.com/kilianp07/greenslot/infra/snapshot"
)

// Service wires configuration, persistence and metrics around the planner.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	policy model.GreenPolicy
	sink   coremetrics.Sink
	snap   snapshot.Store
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithLogger replaces the default zerolog logger.
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }

// WithClock sets the time source used to derive today.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithSink replaces the sinks built from configuration.
func WithSink(sink coremetrics.Sink) Option { return func(s *Service) { s.sink = sink } }

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	svc := &Service{cfg: cfg, now: time.Now}
	for _, o := range opts {
		o(svc)
	}
	if svc.log == nil {
		svc.log = logger.New("service")
	}
	policy, err := scheduler.NewGreenPolicy(cfg.Scheduler.GreenPolicy)
	if err != nil {
		return nil, fmt.Errorf("green policy: %w", err)
	}
	svc.policy = policy
	if svc.sink == nil {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		svc.sink = sink
	}
	snap, err := infrasnapshot.Open(cfg.Snapshot.Backend, cfg.Snapshot.Path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	svc.snap = snap
	return svc, nil
}

// Today returns the current day in the configured zone.
func (s *Service) Today() (time.Time, error) {
	loc, err := s.cfg.Scheduler.Location()
	if err != nil {
		return time.Time{}, err
	}
	return scheduler.Day(s.now().In(loc)), nil
}

// Schedule restores the slots committed by earlier runs from today onwards,
// plans products against them and saves the resulting slot set.
func (s *Service) Schedule(ctx context.Context, products []model.Product) (scheduler.Result, error) {
	store, err := scheduler.NewStore(s.cfg.Scheduler, s.policy)
	if err != nil {
		return scheduler.Result{}, err
	}
	today, err := s.Today()
	if err != nil {
		return scheduler.Result{}, err
	}
	previous, err := s.snap.Load(ctx, snapshot.Query{Start: today})
	if err != nil {
		return scheduler.Result{}, fmt.Errorf("load snapshot: %w", err)
	}
	if _, err := store.Restore(previous); err != nil {
		return scheduler.Result{}, fmt.Errorf("restore snapshot: %w", err)
	}
	if len(previous) > 0 {
		s.log.Infof("restored %d committed slots", len(previous))
	}

	planner, err := scheduler.NewPlanner(s.cfg.Scheduler, scheduler.New(store, s.log, s.sink).WithClock(s.now))
	if err != nil {
		return scheduler.Result{}, err
	}
	res := planner.Plan(products, s.now())
	if err := s.snap.Save(ctx, store.Slots()); err != nil {
		return res, fmt.Errorf("save snapshot: %w", err)
	}
	return res, nil
}

// Slots returns the persisted slots matching q.
func (s *Service) Slots(ctx context.Context, q snapshot.Query) ([]model.DeliverySlot, error) {
	return s.snap.Load(ctx, q)
}

// ServeMetrics exposes Prometheus metrics until ctx is cancelled. It returns
// immediately when no address is configured.
func (s *Service) ServeMetrics(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusAddr == "" {
		return nil
	}
	return metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr, s.log)
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.snap.Close() }
