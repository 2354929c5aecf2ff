package scheduler

import (
	"time"

	"github.com/kilianp07/greenslot/core/logger"
	"github.com/kilianp07/greenslot/core/metrics"
	"github.com/kilianp07/greenslot/core/model"
)

// Scheduler assigns products to the first free slot of their candidate days.
type Scheduler struct {
	store   *Store
	logger  logger.Logger
	metrics metrics.Sink
	now     func() time.Time
}

// New returns a Scheduler committing into store. A nil log or sink disables
// logging or metrics respectively.
func New(store *Store, log logger.Logger, sink metrics.Sink) *Scheduler {
	if log == nil {
		log = logger.Nop{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Scheduler{store: store, logger: log, metrics: sink, now: time.Now}
}

// WithClock sets the time source stamped on scheduling events.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Store returns the slot store the scheduler commits into.
func (s *Scheduler) Store() *Store { return s.store }

// ScheduleDelivery commits one slot for p on the earliest candidate day that
// still has room. It returns false, leaving the store untouched, when no day
// has a free slot or days is empty.
func (s *Scheduler) ScheduleDelivery(days []time.Time, p model.Product) bool {
	_, ok := s.Assign(days, p)
	return ok
}

// Assign is ScheduleDelivery returning the committed slot.
func (s *Scheduler) Assign(days []time.Time, p model.Product) (model.DeliverySlot, bool) {
	for _, day := range days {
		slot, ok := s.store.Reserve(day, p.ID())
		if !ok {
			continue
		}
		s.logger.Debugw("slot committed", map[string]any{
			"product": p.Name(),
			"slot":    slot.Begin.Format(time.RFC3339),
			"green":   slot.Green,
		})
		s.record(p, metrics.OutcomeScheduled, len(days), &slot)
		return slot, true
	}
	s.logger.Debugf("no free slot for %s over %d candidate days", p.Name(), len(days))
	s.record(p, metrics.OutcomeUnschedulable, len(days), nil)
	return model.DeliverySlot{}, false
}

func (s *Scheduler) record(p model.Product, outcome metrics.Outcome, candidates int, slot *model.DeliverySlot) {
	ev := metrics.SchedulingEvent{
		ProductID:     p.ID().String(),
		ProductName:   p.Name(),
		ProductType:   p.Type().String(),
		Outcome:       outcome,
		CandidateDays: candidates,
		Time:          s.now(),
	}
	if slot != nil {
		ev.Slot = slot.Begin
		ev.Green = slot.Green
	}
	if err := s.metrics.RecordScheduling(ev); err != nil {
		s.logger.Errorf("metrics error: %v", err)
	}
}
