package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/greenslot/core/metrics"
	"github.com/kilianp07/greenslot/core/model"
)

// Result is the outcome of one scheduling run.
type Result struct {
	// Schedule lists every committed slot of the store in priority order.
	Schedule []ScheduleEntry
	// Scheduled maps the products placed during this run to their slot.
	Scheduled map[uuid.UUID]model.DeliverySlot
	// Booked maps products that already held a slot before this run, for
	// instance one restored from a snapshot, to that slot.
	Booked map[uuid.UUID]model.DeliverySlot
	// Rejected products failed validation and were never scheduled.
	Rejected []model.Product
	// Unscheduled products were valid but no candidate day had room.
	Unscheduled []model.Product
}

// Planner runs the whole pipeline for a batch of products: validation,
// candidate days, slot assignment and prioritization.
type Planner struct {
	cfg       SchedulerConfig
	loc       *time.Location
	scheduler *Scheduler
}

// NewPlanner returns a Planner using cfg for the horizon and green window.
func NewPlanner(cfg SchedulerConfig, s *Scheduler) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return &Planner{cfg: cfg, loc: loc, scheduler: s}, nil
}

// Today returns midnight of the calendar day of t in the planner's zone.
func (p *Planner) Today(t time.Time) time.Time {
	return Day(t.In(p.loc))
}

// Plan schedules products in the given order, so earlier products win
// contested slots. A product holds at most one slot: one that is already
// booked keeps its slot, and an id seen twice in products is only scheduled
// once.
func (p *Planner) Plan(products []model.Product, now time.Time) Result {
	today := p.Today(now)
	s := p.scheduler
	res := Result{
		Scheduled: make(map[uuid.UUID]model.DeliverySlot),
		Booked:    make(map[uuid.UUID]model.DeliverySlot),
	}
	for _, prod := range products {
		if !prod.IsValid() {
			s.logger.Infof("skipping %s: %s", prod, prod.InvalidReason())
			s.record(prod, metrics.OutcomeRejected, 0, nil)
			res.Rejected = append(res.Rejected, prod)
			continue
		}
		_, placed := res.Scheduled[prod.ID()]
		_, kept := res.Booked[prod.ID()]
		if placed || kept {
			s.logger.Warnf("product %s already scheduled in this run", prod)
			res.Unscheduled = append(res.Unscheduled, prod)
			continue
		}
		if slot, ok := s.store.SlotOf(prod.ID()); ok {
			s.logger.Infof("product %s already booked at %s", prod, slot.Begin.Format(time.RFC3339))
			res.Booked[prod.ID()] = slot
			continue
		}
		days := PossibleDays(prod, today, p.cfg.HorizonDays)
		slot, ok := s.Assign(days, prod)
		if !ok {
			s.logger.Warnf("no delivery slot for %s within %d days", prod, p.cfg.HorizonDays)
			res.Unscheduled = append(res.Unscheduled, prod)
			continue
		}
		res.Scheduled[prod.ID()] = slot
	}
	p.recordOccupancy(today)
	res.Schedule = Prioritize(s.store.Slots(), today, p.cfg.GreenWindow())
	s.logger.Infof("scheduled %d products, %d already booked, %d rejected, %d unscheduled",
		len(res.Scheduled), len(res.Booked), len(res.Rejected), len(res.Unscheduled))
	return res
}

func (p *Planner) recordOccupancy(today time.Time) {
	rec, ok := p.scheduler.metrics.(metrics.DayOccupancyRecorder)
	if !ok {
		return
	}
	store := p.scheduler.store
	for offset := 1; offset < p.cfg.HorizonDays; offset++ {
		day := today.AddDate(0, 0, offset)
		if err := rec.RecordDayOccupancy(day, store.CountForDay(day), store.Capacity()); err != nil {
			p.scheduler.logger.Errorf("occupancy metrics error: %v", err)
			return
		}
	}
}
