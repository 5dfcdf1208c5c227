package system

import (
	"context"

	"github.com/l1jgo/sanctuary/internal/core/event"
	coresys "github.com/l1jgo/sanctuary/internal/core/system"
	"go.uber.org/zap"
)

// EventSystem delivers every event queued so far today. Phase 3 (Events).
type EventSystem struct {
	bus *event.Bus
	log *zap.Logger
}

func NewEventSystem(bus *event.Bus, log *zap.Logger) *EventSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventSystem{bus: bus, log: log}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *EventSystem) Update(_ context.Context, day int) error {
	n := s.bus.Flush()
	if n > 0 {
		s.log.Debug("events delivered", zap.Int("day", day), zap.Int("count", n))
	}
	return nil
}
