package model

import "time"

// GreenPolicy decides whether a delivery at t is environmentally preferable.
type GreenPolicy interface {
	IsGreen(t time.Time) bool
}

// WeekdayPolicy marks every slot falling on one of its weekdays as green.
type WeekdayPolicy struct {
	Days Weekdays
}

// DefaultGreenDays are Friday, Saturday and Sunday.
var DefaultGreenDays = WeekdayRange(time.Friday, time.Sunday)

// DefaultGreenPolicy returns the Friday to Sunday weekday policy.
func DefaultGreenPolicy() GreenPolicy { return WeekdayPolicy{Days: DefaultGreenDays} }

func (p WeekdayPolicy) IsGreen(t time.Time) bool { return p.Days.Has(t.Weekday()) }

// MonthDayPolicy marks fixed days of the month as green, e.g. the 5th,
// 15th and 25th.
type MonthDayPolicy struct {
	Days []int
}

func (p MonthDayPolicy) IsGreen(t time.Time) bool {
	d := t.Day()
	for _, g := range p.Days {
		if g == d {
			return true
		}
	}
	return false
}

// AnyPolicy is green when at least one of its policies is.
type AnyPolicy []GreenPolicy

func (p AnyPolicy) IsGreen(t time.Time) bool {
	for _, g := range p {
		if g != nil && g.IsGreen(t) {
			return true
		}
	}
	return false
}
