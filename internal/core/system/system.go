package system

import (
	"context"
	"fmt"
)

// Phase defines execution ordering within a single sanctuary day.
type Phase int

const (
	PhaseMorning Phase = iota // 0: open the gates, head count
	PhaseFeeding              // 1: plan rations and feed
	PhaseCheckup              // 2: veterinary rounds
	PhaseEvents               // 3: deliver the day's events (alerts, admissions)
	PhaseReport               // 4: end-of-day summaries
	PhasePersist              // 5: save the zoo
)

var phaseNames = [...]string{"morning", "feeding", "checkup", "events", "report", "persist"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// System is one job of the daily routine.
type System interface {
	Phase() Phase
	Update(ctx context.Context, day int) error
}
