package metrics

import "time"

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScheduling forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordScheduling(ev SchedulingEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordScheduling(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordDayOccupancy forwards to the sinks implementing DayOccupancyRecorder.
func (m *MultiSink) RecordDayOccupancy(day time.Time, used, capacity int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DayOccupancyRecorder); ok {
			if err := rec.RecordDayOccupancy(day, used, capacity); err != nil {
				return err
			}
		}
	}
	return nil
}
