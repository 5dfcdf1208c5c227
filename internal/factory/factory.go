// Package factory turns a kind name plus basic attributes into a new
// animal, filling in the species defaults.
package factory

import (
	"errors"
	"fmt"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/data"
)

// ErrUnknownKind is returned when a kind name matches none of the known kinds.
var ErrUnknownKind = errors.New("unknown species")

// Default attributes of CreateDefault.
const (
	DefaultAge    = 3
	DefaultWeight = 50.0
)

// Factory creates animals from kind names. It holds no state beyond the
// species table and has no side effects besides allocation.
type Factory struct {
	species *data.SpeciesTable
}

// New returns a factory drawing defaults from species, or from the
// built-in table when species is nil.
func New(species *data.SpeciesTable) *Factory {
	if species == nil {
		species = data.DefaultSpeciesTable()
	}
	return &Factory{species: species}
}

// Create builds an animal of the named kind (matched case-insensitively)
// with the species' default traits.
func (f *Factory) Create(kind, name string, age int, weight float64) (*animal.Animal, error) {
	return f.CreateWithTraits(kind, name, age, weight, nil)
}

// CreateDefault builds an animal from the kind name alone.
func (f *Factory) CreateDefault(kind string) (*animal.Animal, error) {
	return f.Create(kind, "Random_"+kind, DefaultAge, DefaultWeight)
}

// CreateWithTraits is Create with explicit traits replacing the species
// defaults. A nil traits uses the defaults.
func (f *Factory) CreateWithTraits(kind, name string, age int, weight float64, traits *animal.Traits) (*animal.Animal, error) {
	k, ok := animal.ParseKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	var t animal.Traits
	switch {
	case traits != nil:
		t = *traits
	case f.species.Get(k) != nil:
		t = f.species.Get(k).Traits
	}
	a, err := animal.New(k, name, age, weight, t)
	if err != nil {
		return nil, fmt.Errorf("create %s %q: %w", k, name, err)
	}
	return a, nil
}

// Kinds lists the kinds the factory can build.
func (f *Factory) Kinds() []animal.Kind {
	return animal.Kinds()
}

// Populate creates one animal per roster entry, stopping at the first
// failure.
func (f *Factory) Populate(entries []data.RosterEntry) ([]*animal.Animal, error) {
	out := make([]*animal.Animal, 0, len(entries))
	for i, e := range entries {
		a, err := f.CreateWithTraits(e.Kind, e.Name, e.Age, e.Weight, e.Traits)
		if err != nil {
			return nil, fmt.Errorf("roster entry %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}
