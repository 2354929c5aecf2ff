package scheduler

import (
	"sort"
	"time"

	"github.com/kilianp07/greenslot/core/model"
)

// ScheduleEntry is one line of the externally visible schedule.
type ScheduleEntry struct {
	Time  time.Time `json:"timestamp" yaml:"timestamp"`
	Green bool      `json:"green" yaml:"green"`
}

// HighPriority reports whether slot is green and begins before the end of
// the green window, i.e. before midnight of today+greenWindowDays.
func HighPriority(slot model.DeliverySlot, today time.Time, greenWindowDays int) bool {
	limit := Day(today).AddDate(0, 0, greenWindowDays)
	return slot.Green && slot.Begin.Before(limit)
}

// Prioritize orders slots for presentation: high priority slots first, then
// all others, each group ascending by begin time. Timestamps are returned in
// UTC. The input is not modified.
func Prioritize(slots []model.DeliverySlot, today time.Time, greenWindowDays int) []ScheduleEntry {
	high := make([]model.DeliverySlot, 0, len(slots))
	rest := make([]model.DeliverySlot, 0, len(slots))
	for _, s := range slots {
		if HighPriority(s, today, greenWindowDays) {
			high = append(high, s)
		} else {
			rest = append(rest, s)
		}
	}
	byBegin := func(list []model.DeliverySlot) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Begin.Before(list[j].Begin) })
	}
	byBegin(high)
	byBegin(rest)

	out := make([]ScheduleEntry, 0, len(slots))
	for _, group := range [][]model.DeliverySlot{high, rest} {
		for _, s := range group {
			out = append(out, ScheduleEntry{Time: s.Begin.UTC(), Green: s.Green})
		}
	}
	return out
}
