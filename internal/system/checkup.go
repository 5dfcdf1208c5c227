package system

import (
	"context"

	"github.com/l1jgo/sanctuary/internal/care"
	"github.com/l1jgo/sanctuary/internal/core/event"
	coresys "github.com/l1jgo/sanctuary/internal/core/system"
	"github.com/l1jgo/sanctuary/internal/registry"
)

// CheckupSystem sends the veterinarian on rounds. Animals found unwell
// raise HealthAlerts that the events phase delivers. Phase 2 (Checkup).
type CheckupSystem struct {
	zoo *registry.Zoo
	vet *care.Veterinarian
	bus *event.Bus
}

func NewCheckupSystem(zoo *registry.Zoo, vet *care.Veterinarian, bus *event.Bus) *CheckupSystem {
	return &CheckupSystem{zoo: zoo, vet: vet, bus: bus}
}

func (s *CheckupSystem) Phase() coresys.Phase { return coresys.PhaseCheckup }

func (s *CheckupSystem) Update(_ context.Context, _ int) error {
	s.vet.Round(s.zoo, s.bus)
	return nil
}
