package scheduler

import (
	"reflect"
	"testing"
	"time"

	"github.com/kilianp07/greenslot/core/model"
)

// 2025-01-01 is a Wednesday.
var wednesday = time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC)

func date(day int) time.Time {
	return time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)
}

func mustProduct(t *testing.T, name string, typ model.ProductType, days model.Weekdays, adv int) model.Product {
	t.Helper()
	p, err := model.NewProductWithConstraints(name, typ, days, adv)
	if err != nil {
		t.Fatalf("product %s: %v", name, err)
	}
	return p
}

func TestPossibleDays(t *testing.T) {
	mondays := model.NewWeekdays(time.Monday)
	tests := []struct {
		name    string
		product model.Product
		horizon int
		want    []time.Time
	}{
		{"mondays no lead", mustProduct(t, "a", model.ProductNormal, mondays, 0), 14, []time.Time{date(6), date(13)}},
		{"mondays lead skips first", mustProduct(t, "b", model.ProductNormal, mondays, 6), 14, []time.Time{date(13)}},
		{"last day before horizon", mustProduct(t, "c", model.ProductNormal, model.AllWeek, 13), 14, []time.Time{date(14)}},
		{"lead equals horizon", mustProduct(t, "d", model.ProductNormal, model.AllWeek, 14), 14, nil},
		{"lead beyond horizon", mustProduct(t, "e", model.ProductNormal, model.AllWeek, 15), 14, nil},
		{"no delivery days", mustProduct(t, "f", model.ProductNormal, 0, 0), 14, nil},
		{"short horizon", model.NewProduct("g"), 3, []time.Time{date(2), date(3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PossibleDays(tt.product, wednesday, tt.horizon)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestPossibleDaysZeroLeadExcludesToday(t *testing.T) {
	days := PossibleDays(model.NewProduct("p2"), wednesday, 14)
	if len(days) != 13 {
		t.Fatalf("expected 13 days got %d", len(days))
	}
	if !days[0].Equal(date(2)) {
		t.Fatalf("first day should be tomorrow, got %v", days[0])
	}
}

func TestPossibleDaysProperties(t *testing.T) {
	today := Day(wednesday)
	dayChoices := []model.Weekdays{
		model.AllWeek,
		model.Weekend,
		model.NewWeekdays(time.Tuesday, time.Thursday),
		model.WeekdayRange(time.Monday, time.Friday),
	}
	for _, days := range dayChoices {
		for adv := 0; adv <= 16; adv++ {
			p := mustProduct(t, "prop", model.ProductNormal, days, adv)
			got := PossibleDays(p, wednesday, DefaultHorizonDays)
			if adv >= DefaultHorizonDays && len(got) != 0 {
				t.Fatalf("adv %d: expected no days got %v", adv, got)
			}
			earliest := today.AddDate(0, 0, adv)
			for i, d := range got {
				if !days.Has(d.Weekday()) {
					t.Fatalf("adv %d: %v not a delivery day", adv, d)
				}
				if !d.After(today) {
					t.Fatalf("adv %d: %v not after today", adv, d)
				}
				if d.Before(earliest) {
					t.Fatalf("adv %d: %v before lead time", adv, d)
				}
				if !d.Before(today.AddDate(0, 0, DefaultHorizonDays)) {
					t.Fatalf("adv %d: %v outside horizon", adv, d)
				}
				if i > 0 && !got[i-1].Before(d) {
					t.Fatalf("adv %d: not strictly ascending", adv)
				}
			}
			if again := PossibleDays(p, wednesday, DefaultHorizonDays); !reflect.DeepEqual(got, again) {
				t.Fatalf("adv %d: not repeatable", adv)
			}
		}
	}
}

func TestDayKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	in := time.Date(2025, 3, 30, 23, 59, 0, 0, loc)
	d := Day(in)
	if d.Location() != loc || d.Day() != 30 || d.Hour() != 0 {
		t.Fatalf("unexpected day %v", d)
	}
}
