package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/greenslot/core/catalog"
	"github.com/kilianp07/greenslot/core/model"
	"github.com/kilianp07/greenslot/core/scheduler"
)

// SlotDef is a slot committed before the run starts.
type SlotDef struct {
	Begin   time.Time `yaml:"begin"`
	Product string    `yaml:"product"`
}

// Expected lists what a scenario run must produce. Empty fields are not
// checked.
type Expected struct {
	// Slots maps product names to the begin of their assigned slot.
	Slots       map[string]time.Time      `yaml:"slots,omitempty"`
	Scheduled   *int                      `yaml:"scheduled,omitempty"`
	Rejected    []string                  `yaml:"rejected,omitempty"`
	Unscheduled []string                  `yaml:"unscheduled,omitempty"`
	Schedule    []scheduler.ScheduleEntry `yaml:"schedule,omitempty"`
	// Occupancy maps YYYY-MM-DD to the committed slot count of that day.
	Occupancy  map[string]int `yaml:"occupancy,omitempty"`
	GreenSlots *int           `yaml:"green_slots,omitempty"`
}

type Scenario struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description,omitempty"`
	Today       time.Time                 `yaml:"today"`
	Scheduler   scheduler.SchedulerConfig `yaml:"scheduler"`
	Prefill     []SlotDef                 `yaml:"prefill,omitempty"`
	Products    []catalog.Entry           `yaml:"products"`
	Expected    Expected                  `yaml:"expected"`
}

// ProductModels builds the scenario products in declaration order.
func (sc *Scenario) ProductModels() ([]model.Product, error) {
	out := make([]model.Product, len(sc.Products))
	for i, e := range sc.Products {
		p, err := e.Product()
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Today.IsZero() {
		return nil, fmt.Errorf("%s: today is required", path)
	}
	sc.Scheduler.SetDefaults()
	return &sc, nil
}
