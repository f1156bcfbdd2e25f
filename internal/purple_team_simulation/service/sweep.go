package service

import (
	"context"
	"errors"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
)

type SweepResult struct {
	Stopped  int `json:"stopped"`
	Disposed int `json:"disposed"`
	Sampled  int `json:"sampled"`
}

// Sweep is the janitor pass over live engines:
//   - running or paused sessions whose running time reached the duration
//     budget are stopped; time spent paused does not count
//   - preparing or completed sessions idle past IdleTTL lose their engine;
//     the session record stays until its Redis TTL
//   - running sessions get a metric snapshot when history is configured
//
// Engines are inspected without refreshing their LRU position.
func (s *SessionService) Sweep(ctx context.Context) (SweepResult, error) {
	log := s.log.FromContext(ctx)
	now := s.clock.Now()

	var res SweepResult
	var errs []error
	for _, id := range s.engines.Keys() {
		h, ok := s.engines.Peek(id)
		if !ok {
			continue
		}
		state := h.engine.State()

		switch state.Status {
		case domain.SimRunning, domain.SimPaused:
			budget := time.Duration(state.Duration) * time.Minute
			if budget > 0 && h.engine.RunningTime() >= budget {
				if !h.engine.Stop() {
					continue
				}
				res.Stopped++
				s.metrics.sweeps.WithLabelValues("stop").Inc()
				s.metrics.observeCommand("stop", true)
				if err := s.persistStatus(ctx, id, domain.SimCompleted); err != nil {
					errs = append(errs, err)
				}
				continue
			}
			if state.Status == domain.SimRunning && s.history != nil {
				if err := s.history.InsertBatch(ctx, state.Metrics.Points(id, now)); err != nil {
					errs = append(errs, err)
					continue
				}
				res.Sampled++
				s.metrics.sweeps.WithLabelValues("sample").Inc()
			}

		case domain.SimPreparing, domain.SimCompleted:
			if s.cfg.IdleTTL > 0 && now.Sub(h.idleSince()) >= s.cfg.IdleTTL {
				if s.engines.Remove(id) {
					res.Disposed++
					s.metrics.sweeps.WithLabelValues("dispose").Inc()
				}
			}
		}
	}

	if res != (SweepResult{}) {
		log.LogInfof("sweep", "stopped=%d disposed=%d sampled=%d", res.Stopped, res.Disposed, res.Sampled)
	}
	return res, errors.Join(errs...)
}

func (s *SessionService) persistStatus(ctx context.Context, sessionID string, status domain.SimulationStatus) error {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.syncStatus(ctx, sess, status)
}
