package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/greenslot/core/metrics"
	"github.com/kilianp07/greenslot/core/model"
)

func newTestPlanner(t *testing.T, sink metrics.Sink) *Planner {
	t.Helper()
	p, err := NewPlanner(DefaultConfig(), newTestScheduler(t, sink))
	require.NoError(t, err)
	return p
}

func TestPlanDropsInvalidProducts(t *testing.T) {
	sink := &fakeSink{}
	pl := newTestPlanner(t, sink)
	weekendTemp := mustProduct(t, "pop-up", model.ProductTemporary, model.NewWeekdays(time.Friday, time.Saturday), 0)
	shortExternal := mustProduct(t, "import", model.ProductExternal, model.AllWeek, 2)
	okTemp := mustProduct(t, "seasonal", model.ProductTemporary, model.NewWeekdays(time.Monday), 0)

	res := pl.Plan([]model.Product{weekendTemp, shortExternal, okTemp}, wednesday)

	require.Len(t, res.Rejected, 2)
	assert.Equal(t, "pop-up", res.Rejected[0].Name())
	assert.Equal(t, "import", res.Rejected[1].Name())
	require.Len(t, res.Scheduled, 1)
	assert.Equal(t, at(6, 9), res.Scheduled[okTemp.ID()].Begin)
	assert.Equal(t, 1, pl.scheduler.Store().Len())

	var rejected int
	for _, ev := range sink.events {
		if ev.Outcome == metrics.OutcomeRejected {
			rejected++
		}
	}
	assert.Equal(t, 2, rejected)
}

func TestPlanOrderWinsAndSchedule(t *testing.T) {
	sink := &fakeSink{}
	pl := newTestPlanner(t, sink)
	products := []model.Product{
		model.NewProduct("bread"),
		model.NewProduct("milk"),
		mustProduct(t, "flowers", model.ProductNormal, model.NewWeekdays(time.Friday), 0),
		mustProduct(t, "far", model.ProductNormal, model.AllWeek, 20),
		model.NewProduct("bread"),
	}
	res := pl.Plan(products, wednesday)

	assert.Equal(t, at(2, 9), res.Scheduled[products[0].ID()].Begin)
	assert.Equal(t, at(2, 10), res.Scheduled[products[1].ID()].Begin)
	assert.Equal(t, at(3, 9), res.Scheduled[products[2].ID()].Begin)
	require.Len(t, res.Unscheduled, 2)
	assert.Equal(t, "far", res.Unscheduled[0].Name())
	assert.Equal(t, "bread", res.Unscheduled[1].Name())

	want := []ScheduleEntry{
		{Time: at(3, 9), Green: true},
		{Time: at(2, 9), Green: false},
		{Time: at(2, 10), Green: false},
	}
	assert.Equal(t, want, res.Schedule)

	assert.Equal(t, 2, sink.days[date(2)])
	assert.Equal(t, 1, sink.days[date(3)])
	assert.Equal(t, 0, sink.days[date(14)])
	_, tracked := sink.days[date(15)]
	assert.False(t, tracked, "days past the horizon are not reported")
}

func TestPlanIncludesRestoredSlots(t *testing.T) {
	pl := newTestPlanner(t, nil)
	_, err := pl.scheduler.Store().Restore([]model.DeliverySlot{slotAt(at(2, 9))})
	require.NoError(t, err)

	res := pl.Plan([]model.Product{model.NewProduct("late")}, wednesday)
	assert.Equal(t, at(2, 10), res.Scheduled[model.ProductID("late")].Begin)
	assert.Len(t, res.Schedule, 2)
}

func TestPlanKeepsBookedProducts(t *testing.T) {
	sink := &fakeSink{}
	pl := newTestPlanner(t, sink)
	booked := slotAt(at(3, 12)).Assign(model.ProductID("bread"))
	_, err := pl.scheduler.Store().Restore([]model.DeliverySlot{booked})
	require.NoError(t, err)

	res := pl.Plan([]model.Product{model.NewProduct("bread"), model.NewProduct("milk"), model.NewProduct("bread")}, wednesday)

	assert.Equal(t, at(3, 12), res.Booked[model.ProductID("bread")].Begin)
	assert.NotContains(t, res.Scheduled, model.ProductID("bread"))
	assert.Equal(t, at(2, 9), res.Scheduled[model.ProductID("milk")].Begin)
	require.Len(t, res.Unscheduled, 1)
	assert.Equal(t, "bread", res.Unscheduled[0].Name())
	assert.Equal(t, 2, pl.scheduler.Store().Len())
	assert.Len(t, sink.events, 1, "only milk produced a scheduling event")
}

func TestPlannerToday(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Europe/Stockholm"
	store, err := NewStore(cfg, nil)
	require.NoError(t, err)
	pl, err := NewPlanner(cfg, New(store, nil, nil))
	require.NoError(t, err)

	// 23:30 UTC on the 1st is already the 2nd in Stockholm.
	today := pl.Today(time.Date(2025, 1, 1, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, 2, today.Day())
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, "Europe/Stockholm", today.Location().String())
}
