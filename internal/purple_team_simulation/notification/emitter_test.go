package notification

import (
	"fmt"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/clock"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(id string, typ domain.EventType, sev domain.Severity) domain.SimulationEvent {
	return domain.SimulationEvent{ID: id, Type: typ, Severity: sev, Title: "Ransomware Deployment: Initial Compromise", Description: "desc"}
}

func TestFromEvent_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		event    domain.SimulationEvent
		typ      domain.NotificationType
		severity domain.NotificationSeverity
		duration time.Duration
	}{
		{"critical attack", event("event-1", domain.EventAttack, domain.SeverityCritical), domain.NotifyRedAttack, domain.NoticeError, 8 * time.Second},
		{"high attack", event("event-2", domain.EventAttack, domain.SeverityHigh), domain.NotifyRedAttack, domain.NoticeWarning, 8 * time.Second},
		{"medium attack", event("event-3", domain.EventAttack, domain.SeverityMedium), domain.NotifyRedAttack, domain.NoticeInfo, 8 * time.Second},
		{"low attack", event("event-4", domain.EventAttack, domain.SeverityLow), domain.NotifyRedAttack, domain.NoticeInfo, 8 * time.Second},
		{"critical detection", event("response-event-1", domain.EventDetection, domain.SeverityCritical), domain.NotifyBlueDetection, domain.NoticeInfo, 6 * time.Second},
		{"low mitigation", event("mitigation-event-1", domain.EventMitigation, domain.SeverityLow), domain.NotifyBlueMitigation, domain.NoticeSuccess, 7 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := FromEvent(tt.event)
			assert.Equal(t, tt.typ, n.Type)
			assert.Equal(t, tt.severity, n.Severity)
			assert.Equal(t, tt.duration.Milliseconds(), n.DurationMs)
			assert.Equal(t, "notif-"+tt.event.ID, n.ID)
			assert.Equal(t, tt.event.ID, n.EventID)
			assert.True(t, n.AutoHide)
		})
	}
}

func TestEmitter_CapNewestFirst(t *testing.T) {
	em := NewEmitter(clock.NewFake(time.Unix(0, 0)), 3)
	for i := 1; i <= 5; i++ {
		em.Emit(event(fmt.Sprintf("event-%d", i), domain.EventAttack, domain.SeverityLow))
	}

	list := em.List()
	require.Len(t, list, 3)
	assert.Equal(t, "notif-event-5", list[0].ID)
	assert.Equal(t, "notif-event-4", list[1].ID)
	assert.Equal(t, "notif-event-3", list[2].ID)
}

func TestEmitter_AutoHide(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	em := NewEmitter(c, 0)

	em.Emit(event("event-1", domain.EventAttack, domain.SeverityHigh))
	em.Emit(event("response-event-1", domain.EventDetection, domain.SeverityHigh))
	require.Len(t, em.List(), 2)

	c.Advance(6 * time.Second)
	list := em.List()
	require.Len(t, list, 1, "detection notice expires after 6s")
	assert.Equal(t, "notif-event-1", list[0].ID)

	c.Advance(2 * time.Second)
	assert.Empty(t, em.List(), "attack notice expires after 8s")
	assert.Equal(t, 0, c.Pending())
}

func TestEmitter_DismissAndClear(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	em := NewEmitter(c, 0)
	em.Emit(event("event-1", domain.EventAttack, domain.SeverityHigh))
	em.Emit(event("event-2", domain.EventAttack, domain.SeverityHigh))

	assert.True(t, em.Dismiss("notif-event-1"))
	assert.False(t, em.Dismiss("notif-event-1"))
	assert.Len(t, em.List(), 1)

	em.Clear()
	assert.Empty(t, em.List())
	em.Clear()
	assert.Empty(t, em.List())
	assert.Equal(t, 0, c.Pending(), "clearing stops auto-hide timers")
}

func TestEmitter_Subscribe(t *testing.T) {
	em := NewEmitter(clock.NewFake(time.Unix(0, 0)), 0)
	ch, cancel := em.Subscribe(4)

	em.Emit(event("event-1", domain.EventAttack, domain.SeverityCritical))
	select {
	case n := <-ch:
		assert.Equal(t, "notif-event-1", n.ID)
	default:
		t.Fatal("expected a notification")
	}

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
}

func TestEmitter_SlowSubscriberDoesNotBlock(t *testing.T) {
	em := NewEmitter(clock.NewFake(time.Unix(0, 0)), 0)
	_, cancel := em.Subscribe(1)
	defer cancel()

	for i := 0; i < 10; i++ {
		em.Emit(event(fmt.Sprintf("event-%d", i), domain.EventAttack, domain.SeverityLow))
	}
	assert.Len(t, em.List(), 10)
}

func TestEmitter_Close(t *testing.T) {
	c := clock.NewFake(time.Unix(0, 0))
	em := NewEmitter(c, 0)
	ch, _ := em.Subscribe(1)
	em.Emit(event("event-1", domain.EventAttack, domain.SeverityLow))

	em.Close()
	em.Close()
	assert.Equal(t, 0, c.Pending())

	<-ch // buffered notice
	_, open := <-ch
	assert.False(t, open)

	late, _ := em.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}
