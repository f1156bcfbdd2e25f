package engine

import (
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/catalogue"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/scheduler"
)

// stageStep is one entry of a phase plan. chance is rolled when the
// previous step has fired; a failed roll ends the phase.
type stageStep struct {
	stage  domain.Stage
	delay  time.Duration
	chance float64
}

// phaseRun is one phase of one chain. attackID is set once the attack stage
// fires and is how companions find their attack event.
type phaseRun struct {
	chain    string
	index    int
	scenario string
	phase    catalogue.Phase
	steps    []stageStep
	attackID string
}

func (r *phaseRun) instanceID() string {
	return fmt.Sprintf("%s-%d", r.chain, r.index)
}

func (r *phaseRun) key(s domain.Stage) scheduler.Key {
	return scheduler.Key{Chain: r.chain, Phase: r.index, Stage: string(s)}
}

// planPhase lays out attack, detection and mitigation for one phase. The
// attack delay is relative to chain start, the others to the previous stage.
func (e *Engine) planPhase(p catalogue.Phase) []stageStep {
	return []stageStep{
		{stage: domain.StageAttack, delay: p.Delay, chance: 1},
		{stage: domain.StageDetection, delay: e.cfg.DetectionDelay.sample(e.rng), chance: p.DetectionProbability},
		{stage: domain.StageMitigation, delay: e.cfg.MitigationDelay.sample(e.rng), chance: p.Severity.MitigationChance()},
	}
}

// launchChainLocked picks a scenario and schedules every phase of it
// relative to now.
func (e *Engine) launchChainLocked() {
	sc := e.catalogue.PickRandom(e.rng)
	e.chainSeq++
	chain := fmt.Sprintf("chain-%d", e.chainSeq)

	for i, p := range sc.Phases {
		run := &phaseRun{
			chain:    chain,
			index:    i,
			scenario: sc.Name,
			phase:    p,
			steps:    e.planPhase(p),
		}
		e.scheduleStepLocked(run, 0)
	}

	if len(e.chainHooks) > 0 {
		e.firedChains = append(e.firedChains, sc.Name)
	}
	e.log.LogDebugf("launch_chain", "simulation_id=%s chain=%s scenario=%q phases=%d", e.id, chain, sc.Name, len(sc.Phases))
}

// scheduleStepLocked is the stage sequence driver: it rolls the step's
// chance and schedules it. When the step fires and succeeds, the next step
// is scheduled the same way.
func (e *Engine) scheduleStepLocked(run *phaseRun, i int) {
	if i >= len(run.steps) {
		return
	}
	step := run.steps[i]
	if e.rng.Float64() >= step.chance {
		e.log.LogDebugf("schedule_stage", "simulation_id=%s phase=%s stage=%s skipped", e.id, run.instanceID(), step.stage)
		return
	}
	e.scheduleLocked(run.key(step.stage), step.delay, func() {
		if e.fireStageLocked(run, step.stage) {
			e.scheduleStepLocked(run, i+1)
		}
	})
}

// fireStageLocked applies one stage to the state. It returns false when a
// companion stage cannot find its attack event in the expected status.
func (e *Engine) fireStageLocked(run *phaseRun, stage domain.Stage) bool {
	now := e.clock.Now()

	switch stage {
	case domain.StageAttack:
		e.eventSeq++
		ev := newAttackEvent(e.rng, fmt.Sprintf("event-%d", e.eventSeq), now, run)
		run.attackID = ev.ID
		e.appendLocked(ev)
		return true

	case domain.StageDetection:
		pos, ok := e.attackLocked(run.attackID, domain.StatusActive)
		if !ok {
			e.log.LogDebugf("detect", "simulation_id=%s attack=%s not active", e.id, run.attackID)
			return false
		}
		e.state.Events[pos].Status = domain.StatusDetected
		e.appendLocked(newDetectionEvent(e.rng, e.state.Events[pos], now))
		return true

	case domain.StageMitigation:
		pos, ok := e.attackLocked(run.attackID, domain.StatusDetected)
		if !ok {
			e.log.LogDebugf("mitigate", "simulation_id=%s attack=%s not detected", e.id, run.attackID)
			return false
		}
		e.state.Events[pos].Status = domain.StatusMitigated
		e.appendLocked(newMitigationEvent(e.rng, e.state.Events[pos], now))
		return true
	}
	return false
}

// attackLocked finds an attack event by id with the given status.
func (e *Engine) attackLocked(id string, want domain.EventStatus) (int, bool) {
	pos, ok := e.index[id]
	if !ok {
		return 0, false
	}
	ev := e.state.Events[pos]
	if ev.Type != domain.EventAttack || ev.Status != want {
		return 0, false
	}
	return pos, true
}
