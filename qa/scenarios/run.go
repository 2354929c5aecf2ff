package scenarios

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/kilianp07/greenslot/core/model"
	"github.com/kilianp07/greenslot/core/scheduler"
	"github.com/kilianp07/greenslot/infra/logger"
	"github.com/kilianp07/greenslot/infra/metrics"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	policy, err := scheduler.NewGreenPolicy(sc.Scheduler.GreenPolicy)
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	store, err := scheduler.NewStore(sc.Scheduler, policy)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	prefill := make([]model.DeliverySlot, len(sc.Prefill))
	for i, s := range sc.Prefill {
		prefill[i] = model.NewDeliverySlot(s.Begin, policy).Assign(model.ProductID(s.Product))
	}
	if _, err := store.Restore(prefill); err != nil {
		t.Fatalf("prefill: %v", err)
	}
	planner, err := scheduler.NewPlanner(sc.Scheduler, scheduler.New(store, logger.NopLogger{}, sink))
	if err != nil {
		t.Fatalf("planner: %v", err)
	}
	products, err := sc.ProductModels()
	if err != nil {
		t.Fatalf("products: %v", err)
	}

	res := planner.Plan(products, sc.Today)
	exp := sc.Expected

	for name, begin := range exp.Slots {
		slot, ok := res.Scheduled[model.ProductID(name)]
		if !ok {
			t.Errorf("scenario %s: %s was not scheduled", sc.Name, name)
			continue
		}
		if !slot.Begin.Equal(begin) {
			t.Errorf("scenario %s: %s expected slot %v got %v", sc.Name, name, begin, slot.Begin)
		}
	}
	if exp.Scheduled != nil && len(res.Scheduled) != *exp.Scheduled {
		t.Errorf("scenario %s expected %d scheduled, got %d", sc.Name, *exp.Scheduled, len(res.Scheduled))
	}
	checkNames(t, sc.Name, "rejected", exp.Rejected, res.Rejected)
	checkNames(t, sc.Name, "unscheduled", exp.Unscheduled, res.Unscheduled)

	if exp.Schedule != nil {
		if len(res.Schedule) != len(exp.Schedule) {
			t.Fatalf("scenario %s expected %d schedule entries, got %d", sc.Name, len(exp.Schedule), len(res.Schedule))
		}
		for i, e := range exp.Schedule {
			got := res.Schedule[i]
			if !got.Time.Equal(e.Time) || got.Green != e.Green {
				t.Errorf("scenario %s schedule[%d]: expected %v/%t got %v/%t", sc.Name, i, e.Time, e.Green, got.Time, got.Green)
			}
		}
	}

	for day, want := range exp.Occupancy {
		d, err := time.Parse(time.DateOnly, day)
		if err != nil {
			t.Fatalf("scenario %s: occupancy day %q: %v", sc.Name, day, err)
		}
		if got := store.CountForDay(d); got != want {
			t.Errorf("scenario %s: %s expected %d slots got %d", sc.Name, day, want, got)
		}
		if got := gaugeValue(t, reg, "delivery_day_occupancy", day); got != float64(want) {
			t.Errorf("scenario %s: occupancy gauge for %s is %v", sc.Name, day, got)
		}
	}
	if exp.GreenSlots != nil {
		if got := counterValue(t, reg, "delivery_green_slots_total"); got != float64(*exp.GreenSlots) {
			t.Errorf("scenario %s expected %d green slots, got %v", sc.Name, *exp.GreenSlots, got)
		}
	}
}

func checkNames(t *testing.T, scenario, kind string, want []string, got []model.Product) {
	t.Helper()
	if want == nil {
		return
	}
	if len(want) != len(got) {
		t.Errorf("scenario %s expected %d %s, got %d", scenario, len(want), kind, len(got))
		return
	}
	for i, name := range want {
		if got[i].Name() != name {
			t.Errorf("scenario %s: %s[%d] expected %s got %s", scenario, kind, i, name, got[i].Name())
		}
	}
}

func gather(t *testing.T, reg *prometheus.Registry, name string) []*dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()
		}
	}
	return nil
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	var sum float64
	for _, m := range gather(t, reg, name) {
		sum += m.GetCounter().GetValue()
	}
	return sum
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name, day string) float64 {
	for _, m := range gather(t, reg, name) {
		for _, l := range m.GetLabel() {
			if l.GetName() == "day" && l.GetValue() == day {
				return m.GetGauge().GetValue()
			}
		}
	}
	return 0
}
