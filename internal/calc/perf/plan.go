package perf

// Plan is an ordered list of steps run one pass each.
type Plan struct {
	Name  string   `json:"name"`
	Steps []string `json:"steps"`
}

var (
	// PolarPlan derives the point performance at one airspeed from wing
	// loading, density and the polar: dynamic pressure, lift coefficient,
	// induced and total drag coefficient, glide ratio, glide angle, sink
	// rate, drag and power required.
	PolarPlan = Plan{Name: "polar", Steps: []string{"4", "11", "8", "7", "10", "13", "14", "6", "15"}}

	// AtmospherePlan derives ISA temperature, pressure, density and
	// density ratio from altitude.
	AtmospherePlan = Plan{Name: "atmosphere", Steps: []string{"A1", "A2", "A3", "27"}}

	// PolarAtAltitudePlan runs the atmosphere first so density comes from
	// altitude.
	PolarAtAltitudePlan = Plan{
		Name:  "polar-at-altitude",
		Steps: append(append([]string{}, AtmospherePlan.Steps...), PolarPlan.Steps...),
	}
)

// Plans lists the built-in plans.
func Plans() []Plan {
	return []Plan{PolarPlan, AtmospherePlan, PolarAtAltitudePlan}
}

// LookupPlan returns a built-in plan by name.
func LookupPlan(name string) (Plan, bool) {
	for _, p := range Plans() {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}
