package metrics

// Package metrics defines the interfaces used to observe scheduling runs.
// The scheduler reports one SchedulingEvent per product through a Sink;
// sinks able to track per-day occupancy also implement
// DayOccupancyRecorder. Concrete sinks live in infra/metrics and are
// created from configuration with NewMetricsSink, which returns a MultiSink
// when several sinks are configured.
