package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/kilianp07/greenslot/core/metrics"
	"github.com/kilianp07/greenslot/core/model"
)

type fakeSink struct {
	events []metrics.SchedulingEvent
	days   map[time.Time]int
}

func (f *fakeSink) RecordScheduling(ev metrics.SchedulingEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeSink) RecordDayOccupancy(day time.Time, used, capacity int) error {
	if f.days == nil {
		f.days = make(map[time.Time]int)
	}
	f.days[day] = used
	return nil
}

func newTestScheduler(t *testing.T, sink metrics.Sink) *Scheduler {
	t.Helper()
	return New(newTestStore(t), nil, sink)
}

func TestScheduleDeliveryBeyondHorizon(t *testing.T) {
	sink := &fakeSink{}
	s := newTestScheduler(t, sink)
	p := mustProduct(t, "P1", model.ProductNormal, model.AllWeek, 15)
	days := PossibleDays(p, wednesday, DefaultHorizonDays)
	if len(days) != 0 {
		t.Fatalf("expected no candidate days got %v", days)
	}
	if s.ScheduleDelivery(days, p) {
		t.Fatalf("expected scheduling to fail")
	}
	if s.Store().Len() != 0 {
		t.Fatalf("store must stay empty")
	}
	if len(sink.events) != 1 || sink.events[0].Outcome != metrics.OutcomeUnschedulable {
		t.Fatalf("expected one unschedulable event got %#v", sink.events)
	}
}

func TestScheduleDeliveryFirstHourTomorrow(t *testing.T) {
	sink := &fakeSink{}
	s := newTestScheduler(t, sink)
	p := model.NewProduct("P2")
	slot, ok := s.Assign(PossibleDays(p, wednesday, DefaultHorizonDays), p)
	if !ok {
		t.Fatalf("expected a slot")
	}
	if !slot.Begin.Equal(at(2, 9)) {
		t.Fatalf("expected 09:00 tomorrow got %v", slot.Begin)
	}
	if slot.ProductID != p.ID() {
		t.Fatalf("slot not tagged with product")
	}
	ev := sink.events[0]
	if ev.Outcome != metrics.OutcomeScheduled || !ev.Slot.Equal(slot.Begin) || ev.ProductName != "P2" || ev.CandidateDays != 13 {
		t.Fatalf("unexpected event %#v", ev)
	}
}

func TestScheduleDeliveryCapacity(t *testing.T) {
	s := newTestScheduler(t, nil)
	day := []time.Time{date(2)}
	for i := 1; i <= 11; i++ {
		p := model.NewProduct(fmt.Sprintf("product-%d", i))
		if !s.ScheduleDelivery(day, p) {
			t.Fatalf("product %d should fit", i)
		}
	}
	if s.ScheduleDelivery(day, model.NewProduct("product-12")) {
		t.Fatalf("12th product must not fit")
	}
	if got := s.Store().CountForDay(date(2)); got != 11 {
		t.Fatalf("expected 11 slots got %d", got)
	}
}

func TestScheduleDeliverySpillsToNextDay(t *testing.T) {
	s := newTestScheduler(t, nil)
	days := []time.Time{date(2), date(3)}
	for i := 0; i < 12; i++ {
		if !s.ScheduleDelivery(days, model.NewProduct(fmt.Sprintf("spill-%d", i))) {
			t.Fatalf("product %d should fit", i)
		}
	}
	if s.Store().CountForDay(date(2)) != 11 || s.Store().CountForDay(date(3)) != 1 {
		t.Fatalf("unexpected distribution %d/%d", s.Store().CountForDay(date(2)), s.Store().CountForDay(date(3)))
	}
	slots := s.Store().Slots()
	if !slots[len(slots)-1].Begin.Equal(at(3, 9)) {
		t.Fatalf("spill should take 09:00 next day got %v", slots[len(slots)-1].Begin)
	}
}

func TestScheduleDeliveryOneSlotPerCall(t *testing.T) {
	s := newTestScheduler(t, nil)
	p := model.NewProduct("single")
	if !s.ScheduleDelivery([]time.Time{date(2), date(3), date(6)}, p) {
		t.Fatalf("expected success")
	}
	if s.Store().Len() != 1 {
		t.Fatalf("expected exactly one slot got %d", s.Store().Len())
	}
}

func TestCapacityNeverExceeded(t *testing.T) {
	s := newTestScheduler(t, nil)
	for i := 0; i < 200; i++ {
		adv := i % 4
		p := mustProduct(t, fmt.Sprintf("bulk-%d", i), model.ProductNormal, model.AllWeek, adv)
		s.ScheduleDelivery(PossibleDays(p, wednesday, DefaultHorizonDays), p)
	}
	for offset := 0; offset <= DefaultHorizonDays; offset++ {
		d := Day(wednesday).AddDate(0, 0, offset)
		if n := s.Store().CountForDay(d); n > s.Store().Capacity() {
			t.Fatalf("day %v has %d slots", d, n)
		}
	}
	// 13 candidate days of 11 slots.
	if s.Store().Len() != 13*11 {
		t.Fatalf("expected a full horizon got %d", s.Store().Len())
	}
}

func TestSchedulerClockStampsEvents(t *testing.T) {
	sink := &fakeSink{}
	s := newTestScheduler(t, sink).WithClock(func() time.Time { return wednesday })
	s.ScheduleDelivery([]time.Time{date(2)}, model.NewProduct("stamped"))
	if len(sink.events) != 1 || !sink.events[0].Time.Equal(wednesday) {
		t.Fatalf("expected event stamped with the injected clock, got %#v", sink.events)
	}
}
