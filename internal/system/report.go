package system

import (
	"context"
	"fmt"
	"io"

	"github.com/l1jgo/sanctuary/internal/animal"
	"github.com/l1jgo/sanctuary/internal/care"
	coresys "github.com/l1jgo/sanctuary/internal/core/system"
	"github.com/l1jgo/sanctuary/internal/registry"
)

// ReportSystem closes the day with health and veterinary summaries.
// Phase 4 (Report).
type ReportSystem struct {
	zoo *registry.Zoo
	vet *care.Veterinarian
	out io.Writer
}

func NewReportSystem(zoo *registry.Zoo, vet *care.Veterinarian, out io.Writer) *ReportSystem {
	return &ReportSystem{zoo: zoo, vet: vet, out: out}
}

func (s *ReportSystem) Phase() coresys.Phase { return coresys.PhaseReport }

func (s *ReportSystem) Update(_ context.Context, day int) error {
	unwell := 0
	s.zoo.ForEach(func(a *animal.Animal) {
		if !a.Healthy() {
			unwell++
		}
	})
	fmt.Fprintf(s.out, "\n=== End of Day %d ===\n", day)
	fmt.Fprintf(s.out, "Animals: %d, needing attention: %d\n", s.zoo.Count(), unwell)
	if s.vet != nil {
		s.vet.Stats(s.out)
	}
	return nil
}
