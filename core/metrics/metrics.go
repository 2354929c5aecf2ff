package metrics

import "time"

// Outcome classifies what happened to a product during a run.
type Outcome string

const (
	OutcomeScheduled     Outcome = "scheduled"
	OutcomeUnschedulable Outcome = "unschedulable"
	OutcomeRejected      Outcome = "rejected"
)

// SchedulingEvent describes the handling of one product.
type SchedulingEvent struct {
	ProductID     string
	ProductName   string
	ProductType   string
	Outcome       Outcome
	CandidateDays int
	// Slot and Green are only set for OutcomeScheduled.
	Slot  time.Time
	Green bool
	Time  time.Time
}

// Sink records scheduling events for observability purposes.
type Sink interface {
	RecordScheduling(ev SchedulingEvent) error
}

// DayOccupancyRecorder is implemented by sinks tracking how full each
// delivery day is.
type DayOccupancyRecorder interface {
	RecordDayOccupancy(day time.Time, used, capacity int) error
}

// NopSink implements Sink and DayOccupancyRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordScheduling(SchedulingEvent) error       { return nil }
func (NopSink) RecordDayOccupancy(time.Time, int, int) error { return nil }
