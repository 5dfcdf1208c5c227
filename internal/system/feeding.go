package system

import (
	"context"
	"io"

	"github.com/l1jgo/sanctuary/internal/care"
	coresys "github.com/l1jgo/sanctuary/internal/core/system"
	"github.com/l1jgo/sanctuary/internal/registry"
	"go.uber.org/zap"
)

// FeedingSystem plans today's rations and feeds every animal.
// Phase 1 (Feeding).
type FeedingSystem struct {
	zoo   *registry.Zoo
	rules care.Rules
	out   io.Writer
	log   *zap.Logger

	lastTotal float64
}

func NewFeedingSystem(zoo *registry.Zoo, rules care.Rules, out io.Writer, log *zap.Logger) *FeedingSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeedingSystem{zoo: zoo, rules: rules, out: out, log: log}
}

func (s *FeedingSystem) Phase() coresys.Phase { return coresys.PhaseFeeding }

func (s *FeedingSystem) Update(_ context.Context, day int) error {
	plan := care.PlanRations(s.zoo, s.rules)
	plan.Write(s.out)
	s.zoo.FeedAll(s.out)
	s.lastTotal = plan.Total
	s.log.Info("animals fed", zap.Int("day", day), zap.Float64("kg", plan.Total))
	return nil
}

// LastTotal is the food (kg) handed out on the most recent day.
func (s *FeedingSystem) LastTotal() float64 { return s.lastTotal }
