// Package factory is a small generic registry used to build pluggable
// components, such as green date policies or metrics sinks, from
// configuration. A component is described by a type name and a map of raw
// settings; the registered factory decodes the settings into its own typed
// struct.
//
//	reg := factory.NewRegistry[model.GreenPolicy]()
//	_ = reg.Register("monthday", func(conf map[string]any) (model.GreenPolicy, error) {
//	    var c struct{ Days []int `json:"days"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return model.MonthDayPolicy{Days: c.Days}, nil
//	})
//	p, err := reg.Create(factory.ModuleConfig{Type: "monthday", Conf: map[string]any{"days": []int{5, 15}}})
package factory
