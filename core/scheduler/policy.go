package scheduler

import (
	"fmt"

	"github.com/kilianp07/greenslot/core/factory"
	"github.com/kilianp07/greenslot/core/model"
)

var policyRegistry = factory.NewRegistry[model.GreenPolicy]()

func init() {
	_ = RegisterGreenPolicy("weekday", func(conf map[string]any) (model.GreenPolicy, error) {
		var c struct {
			Days []string `json:"days"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if len(c.Days) == 0 {
			return model.DefaultGreenPolicy(), nil
		}
		days, err := model.ParseWeekdays(c.Days)
		if err != nil {
			return nil, err
		}
		return model.WeekdayPolicy{Days: days}, nil
	})

	_ = RegisterGreenPolicy("monthday", func(conf map[string]any) (model.GreenPolicy, error) {
		var c struct {
			Days []int `json:"days"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		for _, d := range c.Days {
			if d < 1 || d > 31 {
				return nil, fmt.Errorf("monthday: day %d out of range", d)
			}
		}
		return model.MonthDayPolicy{Days: c.Days}, nil
	})
}

// RegisterGreenPolicy adds a green policy factory identified by name.
func RegisterGreenPolicy(name string, f factory.Factory[model.GreenPolicy]) error {
	return policyRegistry.Register(name, f)
}

// NewGreenPolicy builds the policy described by cfgs. No entry yields the
// default Friday to Sunday policy; several entries are combined so that a
// slot is green when any of them says so.
func NewGreenPolicy(cfgs []factory.ModuleConfig) (model.GreenPolicy, error) {
	if len(cfgs) == 0 {
		return model.DefaultGreenPolicy(), nil
	}
	if len(cfgs) == 1 {
		return policyRegistry.Create(cfgs[0])
	}
	policies := make(model.AnyPolicy, len(cfgs))
	for i, c := range cfgs {
		p, err := policyRegistry.Create(c)
		if err != nil {
			return nil, err
		}
		policies[i] = p
	}
	return policies, nil
}
