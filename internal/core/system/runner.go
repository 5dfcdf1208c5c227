package system

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Runner executes systems in phase order each day. Systems of the same
// phase run in registration order.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// RunDay runs every system once. A failing system does not stop the day;
// all failures are returned joined. Cancellation of ctx stops before the
// next system.
func (r *Runner) RunDay(ctx context.Context, day int) error {
	r.ensureSorted()
	var errs []error
	for _, s := range r.systems {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.Update(ctx, day); err != nil {
			errs = append(errs, fmt.Errorf("day %d %s: %w", day, s.Phase(), err))
		}
	}
	return errors.Join(errs...)
}

// RunPhase runs only the systems of the given phase.
func (r *Runner) RunPhase(ctx context.Context, phase Phase, day int) error {
	r.ensureSorted()
	var errs []error
	for _, s := range r.systems {
		if s.Phase() != phase {
			continue
		}
		if err := s.Update(ctx, day); err != nil {
			errs = append(errs, fmt.Errorf("day %d %s: %w", day, phase, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
