// Package care holds the keepers' side of the sanctuary: the veterinarian
// who answers health alerts and the daily ration planner.
package care

import (
	"fmt"
	"io"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/core/event"
	"github.com/l1jgo/sanctuary/internal/scripting"
	"go.uber.org/zap"
)

// Rules are the scripted overrides for checkups and rations.
// *scripting.Engine implements it.
type Rules interface {
	Checkup(ctx scripting.CheckupContext) (scripting.CheckupVerdict, bool)
	DailyRation(ctx scripting.RationContext) (float64, bool)
}

// Herd is any collection the veterinarian can walk. Both the zoo and a
// single-kind enclosure are herds.
type Herd interface {
	ForEach(fn func(*animal.Animal))
}

// Veterinarian examines and treats animals. Attached to a bus, it treats
// every animal named in a HealthAlert.
type Veterinarian struct {
	name           string
	specialization string
	out            io.Writer
	rules          Rules
	log            *zap.Logger
	treated        int
}

// NewVeterinarian puts a veterinarian on duty. Narration goes to out;
// rules may be nil.
func NewVeterinarian(name, specialization string, out io.Writer, rules Rules, log *zap.Logger) *Veterinarian {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Veterinarian{
		name:           name,
		specialization: specialization,
		out:            out,
		rules:          rules,
		log:            log,
	}
	fmt.Fprintf(out, "Veterinarian %s (%s) is now on duty!\n", name, specialization)
	return v
}

func (v *Veterinarian) Name() string           { return v.name }
func (v *Veterinarian) Specialization() string { return v.specialization }
func (v *Veterinarian) Treated() int           { return v.treated }

// Watch subscribes the veterinarian to health alerts on bus.
func (v *Veterinarian) Watch(bus *event.Bus) {
	event.Subscribe(bus, v.onHealthAlert)
}

func (v *Veterinarian) onHealthAlert(e event.HealthAlert) {
	if e.Animal == nil || e.Animal.Released() {
		v.log.Warn("health alert for an animal no longer in care")
		return
	}
	fmt.Fprintf(v.out, "\nALERT: Dr. %s has been notified!\n", v.name)
	if e.Note != "" {
		fmt.Fprintf(v.out, "Reason: %s\n", e.Note)
	}
	v.Treat(e.Animal)
}

// Treat cures the animal and counts the treatment.
func (v *Veterinarian) Treat(a *animal.Animal) {
	fmt.Fprintf(v.out, "Dr. %s is treating %s...\n", v.name, a.Name())
	fmt.Fprintln(v.out, "Performing examination...")
	fmt.Fprintf(v.out, "Current health status: %s\n", status(a.Healthy()))
	fmt.Fprintln(v.out, "Administering medication...")
	fmt.Fprintln(v.out, "Running tests...")

	a.SetHealthy(true)
	v.treated++

	fmt.Fprintf(v.out, "%s has been successfully treated!\n", a.Name())
	fmt.Fprintf(v.out, "Health status: %s\n", status(a.Healthy()))
	v.log.Info("animal treated",
		zap.String("vet", v.name),
		zap.String("name", a.Name()),
		zap.Int("treated", v.treated))
}

// Checkup examines one animal and returns its new health flag. A scripted
// verdict, when the rules give one, replaces the kind's built-in verdict.
func (v *Veterinarian) Checkup(a *animal.Animal) bool {
	fmt.Fprintf(v.out, "\nDr. %s performing checkup on %s...\n", v.name, a.Name())
	if v.rules != nil {
		verdict, ok := v.rules.Checkup(scripting.CheckupContext{
			Kind:    a.Kind().String(),
			Name:    a.Name(),
			Weight:  a.Weight(),
			Age:     a.Age(),
			Variety: a.Traits().Variety,
		})
		if ok {
			if verdict.Note != "" {
				fmt.Fprintln(v.out, verdict.Note)
			}
			a.SetHealthy(verdict.Healthy)
			return verdict.Healthy
		}
	}
	return a.PerformCheckup(v.out)
}

// Round checks every animal of the herd and returns those found unhealthy.
// With a bus, each of them raises a HealthAlert for the next flush.
func (v *Veterinarian) Round(h Herd, bus *event.Bus) []*animal.Animal {
	fmt.Fprintf(v.out, "\n=== Dr. %s's Rounds ===\n", v.name)
	var sick []*animal.Animal
	h.ForEach(func(a *animal.Animal) {
		if v.Checkup(a) {
			return
		}
		sick = append(sick, a)
		if bus != nil {
			event.Emit(bus, event.HealthAlert{Animal: a, Note: "found unwell on rounds"})
		}
	})
	v.log.Info("rounds done", zap.String("vet", v.name), zap.Int("sick", len(sick)))
	return sick
}

// Stats writes the veterinarian's record.
func (v *Veterinarian) Stats(w io.Writer) {
	fmt.Fprintln(w, "\n=== Veterinarian Stats ===")
	fmt.Fprintf(w, "Name: Dr. %s\n", v.name)
	fmt.Fprintf(w, "Specialization: %s\n", v.specialization)
	fmt.Fprintf(w, "Animals treated: %d\n", v.treated)
}

func status(healthy bool) string {
	if healthy {
		return "Healthy"
	}
	return "Needs Attention"
}
