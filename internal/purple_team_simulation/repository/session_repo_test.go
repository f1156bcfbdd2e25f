package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionRepo(t *testing.T) (*repository.SessionRepository, *redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	return repository.NewSessionRepository(client), client, mr
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	repo, _, mr := setupSessionRepo(t)
	ctx := context.Background()

	s := &domain.Session{UserID: "user-1", SimulationID: "sim-1", Status: domain.SimPreparing}
	require.NoError(t, repo.Create(ctx, s))
	assert.NotEmpty(t, s.SessionID)
	assert.False(t, s.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "sim-1", got.SimulationID)
	assert.Equal(t, domain.SimPreparing, got.Status)

	assert.True(t, mr.Exists("psim:session:"+s.SessionID))
	ttl := mr.TTL("psim:session:" + s.SessionID)
	assert.Equal(t, repository.SessionTTL, ttl)
	members, err := mr.Members("psim:user:user-1:sessions")
	require.NoError(t, err)
	assert.Equal(t, []string{s.SessionID}, members)
}

func TestSessionRepository_GetMissing(t *testing.T) {
	repo, _, _ := setupSessionRepo(t)
	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_Update(t *testing.T) {
	repo, _, _ := setupSessionRepo(t)
	ctx := context.Background()

	s := &domain.Session{SessionID: "s-1", UserID: "user-1", Status: domain.SimPreparing}
	require.NoError(t, repo.Create(ctx, s))

	done := time.Now().UTC().Truncate(time.Second)
	s.Status = domain.SimCompleted
	s.CompletedAt = &done
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SimCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, done.Equal(*got.CompletedAt))

	err = repo.Update(ctx, &domain.Session{SessionID: "missing", UserID: "user-1"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepository_ListPrunesExpired(t *testing.T) {
	repo, _, mr := setupSessionRepo(t)
	ctx := context.Background()

	for _, id := range []string{"s-1", "s-2"} {
		require.NoError(t, repo.Create(ctx, &domain.Session{SessionID: id, UserID: "user-1"}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Session{SessionID: "s-3", UserID: "user-2"}))
	mr.Del("psim:session:s-2")

	list, err := repo.ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "s-1", list[0].SessionID)

	members, err := mr.Members("psim:user:user-1:sessions")
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1"}, members)

	empty, err := repo.ListByUserID(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, _, mr := setupSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Session{SessionID: "s-1", UserID: "user-1"}))
	require.NoError(t, repo.Delete(ctx, "s-1"))

	assert.False(t, mr.Exists("psim:session:s-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "s-1"), domain.ErrSessionNotFound)
}

func TestSessionRepository_PublishSubscribe(t *testing.T) {
	repo, _, _ := setupSessionRepo(t)
	ctx := context.Background()

	sub := repo.SubscribeNotifications(ctx, "s-1")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n := domain.NotificationData{ID: "notif-event-1", Type: domain.NotifyRedAttack, EventID: "event-1"}
	require.NoError(t, repo.PublishNotification(ctx, "s-1", n))

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, "psim:events:s-1", msg.Channel)
		var got domain.NotificationData
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, "notif-event-1", got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not received")
	}
}
