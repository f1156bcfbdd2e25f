package janitor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) Sweep(ctx context.Context) (service.SweepResult, error) {
	s.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return service.SweepResult{}, errors.New("sweep without deadline")
	}
	return service.SweepResult{Stopped: 1}, s.err
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("every now and then", &countingSweeper{}, nil)
	assert.Error(t, err)
}

func TestScheduler_RunOnce(t *testing.T) {
	sw := &countingSweeper{err: errors.New("redis unavailable")}
	s, err := NewScheduler("*/30 * * * * *", sw, nil)
	require.NoError(t, err)

	s.RunOnce()
	s.RunOnce()
	assert.EqualValues(t, 2, sw.calls.Load())
}

func TestScheduler_StartRunsOnSchedule(t *testing.T) {
	sw := &countingSweeper{}
	s, err := NewScheduler("* * * * * *", sw, nil)
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return sw.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
