package registry

import (
	"fmt"
	"io"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/core/event"
	"github.com/l1jgo/sanctuary/internal/core/slot"
	"go.uber.org/zap"
)

// Ref is a non-owning handle to a zoo member. It stops resolving once the
// member is removed or the zoo is closed.
type Ref = slot.Ref

// Zoo is a capacity-bounded collection of animals of any kind. It owns its
// animals until they are removed or the zoo is closed.
type Zoo struct {
	pen *Enclosure[*animal.Animal]
	bus *event.Bus
	log *zap.Logger
}

// NewZoo creates an empty zoo. Capacity must be positive.
func NewZoo(name string, capacity int, opts ...Option) (*Zoo, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity %d", ErrInvalidArgument, capacity)
	}
	o := buildOptions(opts)
	z := &Zoo{
		pen: newEnclosure[*animal.Animal](name, capacity, o.log),
		bus: o.bus,
		log: o.log,
	}
	z.log.Info("zoo created", zap.String("zoo", name), zap.Int("capacity", capacity))
	return z, nil
}

func (z *Zoo) Name() string  { return z.pen.name }
func (z *Zoo) Capacity() int { return z.pen.capacity }
func (z *Zoo) Count() int    { return z.pen.Count() }

// Add takes ownership of a. Fails with ErrCapacityExceeded when the zoo is
// full and ErrInvalidArgument for a nil, released or duplicate animal.
func (z *Zoo) Add(a *animal.Animal) error {
	if _, err := z.pen.add(a); err != nil {
		return err
	}
	z.log.Info("animal admitted",
		zap.String("zoo", z.pen.name),
		zap.String("species", a.Species()),
		zap.String("name", a.Name()))
	if z.bus != nil {
		event.Emit(z.bus, event.AnimalAdmitted{Registry: z.pen.name, Animal: a})
	}
	return nil
}

// Remove destroys the first animal named name.
func (z *Zoo) Remove(name string) error {
	a, err := z.pen.remove(name)
	if err != nil {
		return err
	}
	z.log.Info("animal removed",
		zap.String("zoo", z.pen.name),
		zap.String("species", a.Species()),
		zap.String("name", name))
	if z.bus != nil {
		event.Emit(z.bus, event.AnimalReleased{Registry: z.pen.name, Name: name, Species: a.Species()})
	}
	return nil
}

// Find returns the first animal named name without transferring ownership.
func (z *Zoo) Find(name string) (*animal.Animal, error) {
	return z.pen.Find(name)
}

// RefOf returns a generational handle to the first animal named name.
func (z *Zoo) RefOf(name string) (Ref, error) {
	i := z.pen.indexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %s in %s", ErrNotFound, name, z.pen.name)
	}
	return z.pen.members[i].ref, nil
}

// Resolve turns a handle back into its animal, failing with ErrStaleRef
// when the animal has since been removed or the zoo closed.
func (z *Zoo) Resolve(ref Ref) (*animal.Animal, error) {
	if z.pen.slots.Alive(ref) {
		for _, m := range z.pen.members {
			if m.ref == ref {
				return m.value, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrStaleRef, ref)
}

// Animals returns the animals in insertion order.
func (z *Zoo) Animals() []*animal.Animal { return z.pen.Residents() }

func (z *Zoo) ForEach(fn func(*animal.Animal)) { z.pen.ForEach(fn) }

func (z *Zoo) TotalFoodRequirement() float64 { return z.pen.TotalFoodRequirement() }

// CountByKind counts the animals whose species label equals label exactly,
// e.g. "Lion" or "Penguin (Emperor)".
func (z *Zoo) CountByKind(label string) int {
	n := 0
	z.pen.ForEach(func(a *animal.Animal) {
		if a.Species() == label {
			n++
		}
	})
	return n
}

// DisplayByKind writes the sheet of every animal whose species label
// equals label. No match is not an error.
func (z *Zoo) DisplayByKind(w io.Writer, label string) {
	fmt.Fprintf(w, "\n=== %ss in the zoo ===\n", label)
	found := false
	z.pen.ForEach(func(a *animal.Animal) {
		if a.Species() != label {
			return
		}
		a.Describe(w)
		fmt.Fprintln(w)
		found = true
	})
	if !found {
		fmt.Fprintf(w, "No %ss found in the zoo.\n", label)
	}
}

// DisplayAll writes every animal's sheet and food requirement, then the
// totals.
func (z *Zoo) DisplayAll(w io.Writer) {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintf(w, "=== Animals in %s ===\n", z.pen.name)
	fmt.Fprintln(w, "========================================")
	if z.Count() == 0 {
		fmt.Fprintln(w, "No animals in the zoo yet.")
		return
	}
	for i, a := range z.Animals() {
		fmt.Fprintf(w, "\n[%d] ", i+1)
		a.Describe(w)
		fmt.Fprintf(w, "Food required: %g kg\n", a.FoodRequirement())
	}
	fmt.Fprintln(w, "\n----------------------------------------")
	fmt.Fprintf(w, "Total animals: %d\n", z.Count())
	fmt.Fprintf(w, "Total food required today: %g kg\n", z.TotalFoodRequirement())
	fmt.Fprintln(w, "========================================")
}

func (z *Zoo) MakeAllSounds(w io.Writer) {
	fmt.Fprintln(w, "\n=== All Animals Making Sounds ===")
	z.pen.ForEach(func(a *animal.Animal) { a.MakeSound(w) })
}

func (z *Zoo) FeedAll(w io.Writer) {
	fmt.Fprintln(w, "\n=== Feeding Time ===")
	z.pen.ForEach(func(a *animal.Animal) { a.Eat(w) })
}

// PerformCheckups examines every animal and returns the ones found in need
// of attention. With a bus attached, each of them raises a HealthAlert.
func (z *Zoo) PerformCheckups(w io.Writer) []*animal.Animal {
	fmt.Fprintln(w, "\n=== Daily Checkups ===")
	var sick []*animal.Animal
	z.pen.ForEach(func(a *animal.Animal) {
		if !a.PerformCheckup(w) {
			sick = append(sick, a)
			if z.bus != nil {
				event.Emit(z.bus, event.HealthAlert{Animal: a, Note: "failed daily checkup"})
			}
		}
		fmt.Fprintln(w)
	})
	return sick
}

// Clone returns a deep copy named "<name>_copy" with the same capacity.
// Every animal is cloned, so closing either zoo never affects the other.
// The copy shares the original's logger and bus.
func (z *Zoo) Clone() *Zoo {
	c := &Zoo{
		pen: newEnclosure[*animal.Animal](z.pen.name+"_copy", z.pen.capacity, z.log),
		bus: z.bus,
		log: z.log,
	}
	for _, m := range z.pen.members {
		ref := c.pen.slots.Acquire()
		c.pen.members = append(c.pen.members, member[*animal.Animal]{ref: ref, value: m.value.Clone()})
	}
	z.log.Info("zoo cloned", zap.String("zoo", z.pen.name), zap.String("copy", c.pen.name), zap.Int("animals", c.Count()))
	return c
}

// Close destroys every remaining animal and invalidates all refs.
func (z *Zoo) Close() {
	n := z.Count()
	z.pen.Close()
	z.log.Info("zoo closed", zap.String("zoo", z.pen.name), zap.Int("released", n))
}
