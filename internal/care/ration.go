package care

import (
	"fmt"
	"io"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/scripting"
)

// DailyRation returns today's food for a in kg. Without rules, or when the
// rules have no answer, it is the kind's fixed share of body weight.
func DailyRation(a *animal.Animal, rules Rules) float64 {
	if rules != nil {
		kg, ok := rules.DailyRation(scripting.RationContext{
			Kind:      a.Kind().String(),
			Species:   a.Species(),
			Weight:    a.Weight(),
			Age:       a.Age(),
			Healthy:   a.Healthy(),
			BaseRatio: animal.FoodRatio(a.Kind()),
		})
		if ok {
			return kg
		}
	}
	return a.FoodRequirement()
}

// RationLine is one row of a feeding plan.
type RationLine struct {
	Name    string
	Species string
	Kg      float64
}

// Plan is a feeding plan for a herd.
type Plan struct {
	Lines []RationLine
	Total float64
}

// PlanRations computes every animal's ration.
func PlanRations(h Herd, rules Rules) Plan {
	var p Plan
	h.ForEach(func(a *animal.Animal) {
		kg := DailyRation(a, rules)
		p.Lines = append(p.Lines, RationLine{Name: a.Name(), Species: a.Species(), Kg: kg})
		p.Total += kg
	})
	return p
}

// Write prints the plan as a table.
func (p Plan) Write(w io.Writer) {
	fmt.Fprintln(w, "\n=== Daily Rations ===")
	for _, l := range p.Lines {
		fmt.Fprintf(w, "%-12s %-20s %8.2f kg\n", l.Name, l.Species, l.Kg)
	}
	fmt.Fprintf(w, "%-33s %8.2f kg\n", "Total", p.Total)
}
