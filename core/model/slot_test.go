package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewDeliverySlot(t *testing.T) {
	// 2025-01-03 is a Friday.
	fri := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)
	s := NewDeliverySlot(fri, DefaultGreenPolicy())
	assert.Equal(t, fri.Add(time.Hour), s.End)
	assert.True(t, s.Green)
	assert.False(t, s.Assigned())

	mon := NewDeliverySlot(fri.AddDate(0, 0, 3), DefaultGreenPolicy())
	assert.False(t, mon.Green)

	assert.False(t, NewDeliverySlot(fri, nil).Green)
}

func TestDeliverySlotAssign(t *testing.T) {
	begin := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	s := NewDeliverySlot(begin, nil)
	id := uuid.New()
	a := s.Assign(id)
	assert.False(t, s.Assigned(), "assign must not mutate the receiver")
	assert.True(t, a.Assigned())
	assert.Equal(t, id, a.ProductID)
	assert.True(t, a.Same(s))
	assert.False(t, a.Same(NewDeliverySlot(begin.Add(time.Hour), nil)))
}

func TestGreenPolicies(t *testing.T) {
	wed5 := time.Date(2025, 2, 5, 12, 0, 0, 0, time.UTC) // Wednesday
	thu6 := wed5.AddDate(0, 0, 1)

	md := MonthDayPolicy{Days: []int{5, 15, 25}}
	assert.True(t, md.IsGreen(wed5))
	assert.False(t, md.IsGreen(thu6))

	wd := WeekdayPolicy{Days: NewWeekdays(time.Thursday)}
	assert.False(t, wd.IsGreen(wed5))
	assert.True(t, wd.IsGreen(thu6))

	either := AnyPolicy{md, wd, nil}
	assert.True(t, either.IsGreen(wed5))
	assert.True(t, either.IsGreen(thu6))
	assert.False(t, either.IsGreen(thu6.AddDate(0, 0, 1)))
	assert.False(t, AnyPolicy{}.IsGreen(wed5))
}

func TestWeekdays(t *testing.T) {
	assert.Equal(t, 7, AllWeek.Len())
	assert.Equal(t, NewWeekdays(time.Friday, time.Saturday, time.Sunday), WeekdayRange(time.Friday, time.Sunday))
	assert.Equal(t, NewWeekdays(time.Monday), WeekdayRange(time.Monday, time.Monday))
	assert.True(t, Weekend.Has(time.Saturday))
	assert.False(t, Weekend.Has(time.Monday))
	assert.False(t, AllWeek.Has(time.Weekday(9)))
	assert.Equal(t, []time.Weekday{time.Monday, time.Sunday}, NewWeekdays(time.Sunday, time.Monday).Days())
	assert.Equal(t, "Friday,Saturday,Sunday", DefaultGreenDays.String())
}

func TestParseWeekdays(t *testing.T) {
	w, err := ParseWeekdays([]string{"mon", "Wednesday", " FRI "})
	require.NoError(t, err)
	assert.Equal(t, NewWeekdays(time.Monday, time.Wednesday, time.Friday), w)

	_, err = ParseWeekdays([]string{"mo"})
	assert.ErrorIs(t, err, ErrUnknownWeekday)
	_, err = ParseWeekday("funday")
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestWeekdaysYAML(t *testing.T) {
	var doc struct {
		Days  Weekdays `yaml:"days"`
		Other Weekdays `yaml:"other"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("days: [monday, tue]\nother: sat, sun\n"), &doc))
	assert.Equal(t, NewWeekdays(time.Monday, time.Tuesday), doc.Days)
	assert.Equal(t, Weekend, doc.Other)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "- monday")

	var bad struct {
		Days Weekdays `yaml:"days"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("days: [noday]\n"), &bad))

	var text Weekdays
	require.NoError(t, text.UnmarshalText([]byte("Friday,Saturday")))
	b, err := text.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Friday,Saturday", string(b))
}

func TestWeekdaysJSON(t *testing.T) {
	b, err := json.Marshal(NewWeekdays(time.Monday, time.Friday))
	require.NoError(t, err)
	assert.JSONEq(t, `["monday","friday"]`, string(b))

	var w Weekdays
	require.NoError(t, json.Unmarshal([]byte(`["sat","sun"]`), &w))
	assert.Equal(t, Weekend, w)
	require.NoError(t, json.Unmarshal([]byte(`"mon, tue"`), &w))
	assert.Equal(t, NewWeekdays(time.Monday, time.Tuesday), w)
	assert.Error(t, json.Unmarshal([]byte(`["someday"]`), &w))
	assert.Error(t, json.Unmarshal([]byte(`42`), &w))
}
