package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/logging"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/service"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = 20 * time.Second

// Sweeper is the part of the session service the janitor drives.
type Sweeper interface {
	Sweep(ctx context.Context) (service.SweepResult, error)
}

// Scheduler runs the session sweep on a seconds-resolution cron spec.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	log     *logging.Logger
}

func NewScheduler(spec string, sweeper Sweeper, log *logging.Logger) (*Scheduler, error) {
	if log == nil {
		log = logging.Discard()
	}
	s := &Scheduler{
		// sweeps never overlap
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweeper: sweeper,
		log:     log,
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid sweep spec %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running sweeps in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.LogInfof("janitor_start", "entries=%d", len(s.cron.Entries()))
}

// Stop halts the schedule and waits for a running sweep to finish or ctx
// to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce performs one sweep.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	res, err := s.sweeper.Sweep(ctx)
	if err != nil {
		s.log.LogError("sweep", err)
	}
	s.log.LogDebugf("sweep", "stopped=%d disposed=%d sampled=%d", res.Stopped, res.Disposed, res.Sampled)
}
