package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/sanctuary/internal/animal"
	"gopkg.in/yaml.v3"
)

// SpeciesTemplate holds the default traits a new animal of a kind receives.
type SpeciesTemplate struct {
	Kind   string        `yaml:"kind"`
	Traits animal.Traits `yaml:"traits"`
}

type speciesListFile struct {
	Species []SpeciesTemplate `yaml:"species"`
}

// SpeciesTable holds one template per known kind.
type SpeciesTable struct {
	templates map[animal.Kind]*SpeciesTemplate
}

// DefaultSpeciesTable returns the built-in templates.
func DefaultSpeciesTable() *SpeciesTable {
	t := &SpeciesTable{templates: make(map[animal.Kind]*SpeciesTemplate, len(builtinSpecies))}
	for k, traits := range builtinSpecies {
		t.templates[k] = &SpeciesTemplate{Kind: k.String(), Traits: traits}
	}
	return t
}

// LoadSpeciesTable loads templates from a YAML file over the built-in
// defaults. Kinds absent from the file keep their built-in template; an
// entry naming an unknown kind is an error.
func LoadSpeciesTable(path string) (*SpeciesTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species_list: %w", err)
	}
	var f speciesListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse species_list: %w", err)
	}
	t := DefaultSpeciesTable()
	for i := range f.Species {
		s := &f.Species[i]
		k, ok := animal.ParseKind(s.Kind)
		if !ok {
			return nil, fmt.Errorf("species_list entry %d: unknown kind %q", i, s.Kind)
		}
		s.Kind = k.String()
		t.templates[k] = s
	}
	return t, nil
}

// Get returns the template of a kind, or nil if the kind is unknown.
func (t *SpeciesTable) Get(k animal.Kind) *SpeciesTemplate {
	return t.templates[k]
}

// Count returns the number of templates.
func (t *SpeciesTable) Count() int {
	return len(t.templates)
}

// Built-in species defaults.
var builtinSpecies = map[animal.Kind]animal.Traits{
	animal.KindLion: {
		HasFur: true, FurColor: "Golden", GestationDays: 110,
		ManeSize: 20, Alpha: false,
	},
	animal.KindElephant: {
		HasFur: false, FurColor: "Gray", GestationDays: 660,
		TrunkLength: 1.5, TuskLength: 100, HasIvory: true,
	},
	animal.KindMonkey: {
		HasFur: true, FurColor: "Brown", GestationDays: 160,
		TailLength: 50, Prehensile: true, Variety: "Capuchin",
	},
	animal.KindEagle: {
		Wingspan: 2.0, CanFly: true, BeakType: "Hooked",
		ClawLength: 7.0, VisionRange: 3000, Golden: false,
	},
	animal.KindPenguin: {
		Wingspan: 0.4, CanFly: false, BeakType: "Small",
		SwimSpeed: 8, DivingDepth: 150, Variety: "Emperor",
	},
	animal.KindParrot: {
		Wingspan: 0.5, CanFly: true, BeakType: "Curved",
		PlumageColor: "Green", Intelligence: 8,
	},
}

// RosterEntry places one animal into the sanctuary at startup. A nil
// Traits means "use the species template".
type RosterEntry struct {
	Kind   string         `yaml:"kind"`
	Name   string         `yaml:"name"`
	Age    int            `yaml:"age"`
	Weight float64        `yaml:"weight"`
	Traits *animal.Traits `yaml:"traits,omitempty"`
}

type rosterFile struct {
	Animals []RosterEntry `yaml:"animals"`
}

// LoadRoster loads the startup population from a YAML file.
func LoadRoster(path string) ([]RosterEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var f rosterFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return f.Animals, nil
}
