package system

import (
	"context"
	"fmt"
	"io"

	coresys "github.com/l1jgo/sanctuary/internal/core/system"
	"github.com/l1jgo/sanctuary/internal/registry"
)

// MorningSystem opens the day with a head count. Phase 0 (Morning).
type MorningSystem struct {
	zoo *registry.Zoo
	out io.Writer
}

func NewMorningSystem(zoo *registry.Zoo, out io.Writer) *MorningSystem {
	return &MorningSystem{zoo: zoo, out: out}
}

func (s *MorningSystem) Phase() coresys.Phase { return coresys.PhaseMorning }

func (s *MorningSystem) Update(_ context.Context, day int) error {
	fmt.Fprintf(s.out, "\n##### Day %d at %s #####\n", day, s.zoo.Name())
	fmt.Fprintf(s.out, "Head count: %d/%d\n", s.zoo.Count(), s.zoo.Capacity())
	return nil
}
