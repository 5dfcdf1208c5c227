package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	phase Phase
	name  string
	log   *[]string
	err   error
}

func (r recorder) Phase() Phase { return r.phase }

func (r recorder) Update(_ context.Context, _ int) error {
	*r.log = append(*r.log, r.name)
	return r.err
}

func TestRunDayOrdersByPhaseThenRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhasePersist, "save", &log, nil})
	r.Register(recorder{PhaseFeeding, "feed-a", &log, nil})
	r.Register(recorder{PhaseMorning, "open", &log, nil})
	r.Register(recorder{PhaseFeeding, "feed-b", &log, nil})

	require.NoError(t, r.RunDay(context.Background(), 1))
	assert.Equal(t, []string{"open", "feed-a", "feed-b", "save"}, log)
}

func TestRunDayJoinsFailures(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	r := NewRunner()
	r.Register(recorder{PhaseFeeding, "feed", &log, boom})
	r.Register(recorder{PhaseReport, "report", &log, nil})

	err := r.RunDay(context.Background(), 3)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "day 3 feeding")
	assert.Equal(t, []string{"feed", "report"}, log)
}

func TestRunDayStopsWhenCancelled(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhaseMorning, "open", &log, nil})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.RunDay(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, log)
}

func TestRunPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhaseCheckup, "rounds", &log, nil})
	r.Register(recorder{PhaseEvents, "flush", &log, nil})

	require.NoError(t, r.RunPhase(context.Background(), PhaseEvents, 1))
	assert.Equal(t, []string{"flush"}, log)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "checkup", PhaseCheckup.String())
	assert.Equal(t, "phase(42)", Phase(42).String())
}
