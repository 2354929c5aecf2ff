package scheduler

import (
	"time"

	"github.com/kilianp07/greenslot/core/model"
)

// Day truncates t to midnight of its calendar day in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// PossibleDays lists, in ascending order, the days after today on which p
// may be delivered: the lead time is honoured, the product's weekdays are
// respected and every day lies before today+horizonDays. Same-day delivery
// is never offered. The result depends only on the arguments.
func PossibleDays(p model.Product, today time.Time, horizonDays int) []time.Time {
	lead := p.DaysInAdvance()
	if lead >= horizonDays {
		return nil
	}
	if lead < 1 {
		lead = 1
	}
	start := Day(today)
	var days []time.Time
	for offset := lead; offset < horizonDays; offset++ {
		d := start.AddDate(0, 0, offset)
		if p.DeliverableOn(d.Weekday()) {
			days = append(days, d)
		}
	}
	return days
}
