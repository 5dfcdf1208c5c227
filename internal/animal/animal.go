package animal

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrInvalidAttributes is returned when an animal would be constructed with
// a negative age, a non-positive weight or an unknown kind.
var ErrInvalidAttributes = errors.New("invalid animal attributes")

// Animal is a single simulated animal: identity, attributes and a kind that
// selects its behaviour. Accessed from one goroutine at a time; no locks.
type Animal struct {
	id       uuid.UUID
	kind     Kind
	name     string
	age      int
	weight   float64 // kg
	healthy  bool
	traits   Traits
	released bool
}

// New builds a healthy animal. Age must be >= 0 and weight > 0.
func New(kind Kind, name string, age int, weight float64, traits Traits) (*Animal, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidAttributes, kind)
	}
	if age < 0 {
		return nil, fmt.Errorf("%w: age %d", ErrInvalidAttributes, age)
	}
	if !(weight > 0) || math.IsInf(weight, 0) {
		return nil, fmt.Errorf("%w: weight %g", ErrInvalidAttributes, weight)
	}
	traits = traits.clone()
	if kind == KindParrot && len(traits.Vocabulary) == 0 {
		traits.Vocabulary = append([]string(nil), DefaultVocabulary...)
	}
	return &Animal{
		id:      uuid.New(),
		kind:    kind,
		name:    name,
		age:     age,
		weight:  weight,
		healthy: true,
		traits:  traits,
	}, nil
}

// Restore rebuilds an animal with a known id and health flag, as read back
// from storage.
func Restore(id uuid.UUID, kind Kind, name string, age int, weight float64, healthy bool, traits Traits) (*Animal, error) {
	a, err := New(kind, name, age, weight, traits)
	if err != nil {
		return nil, err
	}
	a.id = id
	a.healthy = healthy
	return a, nil
}

func (a *Animal) ID() uuid.UUID   { return a.id }
func (a *Animal) Kind() Kind      { return a.kind }
func (a *Animal) Group() Group    { return a.kind.Group() }
func (a *Animal) Name() string    { return a.name }
func (a *Animal) Age() int        { return a.age }
func (a *Animal) Weight() float64 { return a.weight }
func (a *Animal) Healthy() bool   { return a.healthy }

func (a *Animal) SetName(name string) { a.name = name }

// SetAge assigns the age; a negative value is ignored and false returned.
func (a *Animal) SetAge(age int) bool {
	if age < 0 {
		return false
	}
	a.age = age
	return true
}

// SetWeight assigns the weight; a non-positive (or NaN) value is ignored
// and false returned.
func (a *Animal) SetWeight(weight float64) bool {
	if !(weight > 0) || math.IsInf(weight, 0) {
		return false
	}
	a.weight = weight
	return true
}

func (a *Animal) SetHealthy(healthy bool) { a.healthy = healthy }

// Traits returns a copy of the animal's descriptive attributes.
func (a *Animal) Traits() Traits { return a.traits.clone() }

// UpdateTraits lets fn edit the traits in place. The kind cannot change.
func (a *Animal) UpdateTraits(fn func(*Traits)) {
	fn(&a.traits)
	if a.kind == KindParrot && len(a.traits.Vocabulary) == 0 {
		a.traits.Vocabulary = append([]string(nil), DefaultVocabulary...)
	}
}

// Species returns the display label of the animal, e.g. "Lion",
// "Penguin (Emperor)" or "Golden Eagle". Registries match kind queries
// against this label exactly.
func (a *Animal) Species() string {
	switch a.kind {
	case KindMonkey, KindPenguin:
		return a.kind.String() + " (" + a.traits.Variety + ")"
	case KindEagle:
		if a.traits.Golden {
			return "Golden Eagle"
		}
	}
	return a.kind.String()
}

// FoodRequirement is the daily food need in kg, a fixed share of body
// weight per kind.
func (a *Animal) FoodRequirement() float64 {
	return a.weight * behaviors[a.kind].foodRatio
}

// Clone returns a deep copy with a fresh id. The copy is never released,
// even when a is.
func (a *Animal) Clone() *Animal {
	c := *a
	c.id = uuid.New()
	c.traits = a.traits.clone()
	c.released = false
	return &c
}

// Release marks the animal as destroyed by its owning registry. Calling it
// more than once has no further effect.
func (a *Animal) Release() { a.released = true }

// Released reports whether the owning registry has destroyed the animal.
func (a *Animal) Released() bool { return a.released }

func (a *Animal) String() string {
	return fmt.Sprintf("%s %q", a.Species(), a.name)
}
