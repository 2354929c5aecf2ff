package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/greenslot/core/metrics"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	outcomes  *prometheus.CounterVec
	green     prometheus.Counter
	leadDays  prometheus.Histogram
	occupancy *prometheus.GaugeVec
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	outcomes, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_scheduling_total",
		Help: "Products handled by the scheduler by outcome",
	}, []string{"outcome", "product_type"}))
	if err != nil {
		return nil, err
	}
	green, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "delivery_green_slots_total",
		Help: "Delivery slots assigned on a green day",
	}))
	if err != nil {
		return nil, err
	}
	leadDays, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_slot_lead_days",
		Help:    "Days between the scheduling run and the assigned slot",
		Buckets: prometheus.LinearBuckets(1, 1, 14),
	}))
	if err != nil {
		return nil, err
	}
	occupancy, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "delivery_day_occupancy",
		Help: "Committed slots per delivery day",
	}, []string{"day"}))
	if err != nil {
		return nil, err
	}
	return &PromSink{outcomes: outcomes, green: green, leadDays: leadDays, occupancy: occupancy}, nil
}

// register returns the already registered collector when one with the same
// descriptor exists so that several sinks can share a registerer.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordScheduling increments the outcome counter and, for assigned slots,
// the green counter and lead-time histogram.
func (s *PromSink) RecordScheduling(ev coremetrics.SchedulingEvent) error {
	s.outcomes.WithLabelValues(string(ev.Outcome), ev.ProductType).Inc()
	if ev.Outcome != coremetrics.OutcomeScheduled {
		return nil
	}
	if ev.Green {
		s.green.Inc()
	}
	if !ev.Time.IsZero() && !ev.Slot.IsZero() {
		s.leadDays.Observe(ev.Slot.Sub(ev.Time).Hours() / 24)
	}
	return nil
}

// RecordDayOccupancy sets the gauge for the given day, labelled YYYY-MM-DD.
func (s *PromSink) RecordDayOccupancy(day time.Time, used, capacity int) error {
	if capacity <= 0 {
		return errors.New("capacity must be positive, got " + strconv.Itoa(capacity))
	}
	s.occupancy.WithLabelValues(day.Format(time.DateOnly)).Set(float64(used))
	return nil
}
