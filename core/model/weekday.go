package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnknownWeekday is returned when a weekday name cannot be parsed.
var ErrUnknownWeekday = errors.New("unknown weekday")

// Weekdays is a set of days of the week stored as a bit mask indexed by
// time.Weekday.
type Weekdays uint8

const (
	// AllWeek contains every day from Sunday to Saturday.
	AllWeek Weekdays = 1<<7 - 1
	// Weekend contains Saturday and Sunday.
	Weekend = Weekdays(1<<time.Saturday | 1<<time.Sunday)
)

// NewWeekdays builds a set from the given days.
func NewWeekdays(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w = w.Add(d)
	}
	return w
}

// WeekdayRange returns the days from start to end inclusive, wrapping past
// Saturday: WeekdayRange(time.Friday, time.Sunday) is Friday to Sunday.
func WeekdayRange(start, end time.Weekday) Weekdays {
	var w Weekdays
	for d := start; ; d = (d + 1) % 7 {
		w = w.Add(d)
		if d == end {
			return w
		}
	}
}

func (w Weekdays) Add(d time.Weekday) Weekdays {
	if d < time.Sunday || d > time.Saturday {
		return w
	}
	return w | 1<<d
}

func (w Weekdays) Has(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return w&(1<<d) != 0
}

// Intersects reports whether w and o share at least one day.
func (w Weekdays) Intersects(o Weekdays) bool { return w&o != 0 }

func (w Weekdays) Len() int { return bits.OnesCount8(uint8(w & AllWeek)) }

// Days lists the members Monday first.
func (w Weekdays) Days() []time.Weekday {
	var out []time.Weekday
	for i := 1; i <= 7; i++ {
		d := time.Weekday(i % 7)
		if w.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (w Weekdays) String() string {
	days := w.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}

// ParseWeekday accepts full English names or their three letter prefix,
// ignoring case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if name == full || name == full[:3] {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}

// ParseWeekdays builds a set from a list of weekday names.
func ParseWeekdays(names []string) (Weekdays, error) {
	var w Weekdays
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return 0, err
		}
		w = w.Add(d)
	}
	return w, nil
}

// MarshalYAML encodes the set as a list of weekday names.
func (w Weekdays) MarshalYAML() (any, error) {
	days := w.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}
	return names, nil
}

// UnmarshalYAML accepts either a list of names or a single comma separated
// string.
func (w *Weekdays) UnmarshalYAML(node *yaml.Node) error {
	var names []string
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return err
		}
	case yaml.ScalarNode:
		names = splitNames(node.Value)
	default:
		return fmt.Errorf("weekdays: unexpected yaml node kind %d", node.Kind)
	}
	v, err := ParseWeekdays(names)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

func (w Weekdays) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *Weekdays) UnmarshalText(b []byte) error {
	v, err := ParseWeekdays(splitNames(string(b)))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// MarshalJSON encodes the set as a list of weekday names.
func (w Weekdays) MarshalJSON() ([]byte, error) {
	names, _ := w.MarshalYAML()
	return json.Marshal(names)
}

// UnmarshalJSON accepts either a list of names or a comma separated string.
func (w *Weekdays) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("weekdays: %w", err)
		}
		names = splitNames(s)
	}
	v, err := ParseWeekdays(names)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

func splitNames(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
