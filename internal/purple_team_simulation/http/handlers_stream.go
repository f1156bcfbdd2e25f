package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/gin-gonic/gin"
)

// StreamSession streams a session using Server-Sent Events:
//
//	initial       full state when the stream opens
//	notification  each new notice
//	state         periodic snapshot while the state changes
//	completed     final state, then the stream ends
//	closed        the engine was disposed, then the stream ends
func (h *Handler) StreamSession(c *gin.Context) {
	sessionID := c.Param("id")
	ctx := c.Request.Context()

	state, err := h.svc.State(ctx, sessionID)
	if err != nil {
		h.writeError(c, "stream session", err)
		return
	}

	notes, cancel, err := h.svc.Subscribe(ctx, sessionID)
	if err != nil {
		h.writeError(c, "stream session", err)
		return
	}
	defer cancel()

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)

	send := func(event string, payload interface{}) {
		data, err := json.Marshal(payload)
		if err != nil {
			h.log.FromContext(ctx).LogError("stream_encode", err)
			return
		}
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
	}

	send("initial", gin.H{"state": state})
	if state.Status == domain.SimCompleted {
		send("completed", gin.H{"state": state})
		return
	}

	keepAlive := time.NewTicker(h.keepAliveEvery)
	defer keepAlive.Stop()
	snapshots := time.NewTicker(h.snapshotEvery)
	defer snapshots.Stop()

	lastEvents, lastStatus := len(state.Events), state.Status
	for {
		select {
		case <-ctx.Done():
			return

		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case n, ok := <-notes:
			if !ok {
				return
			}
			send("notification", gin.H{"notification": n})

		case <-snapshots.C:
			state, err := h.svc.State(ctx, sessionID)
			if errors.Is(err, domain.ErrEngineClosed) || errors.Is(err, domain.ErrSessionNotFound) {
				send("closed", gin.H{"session_id": sessionID})
				return
			}
			if err != nil {
				continue
			}
			if state.Status == domain.SimCompleted {
				send("completed", gin.H{"state": state})
				return
			}
			// Event statuses only change alongside a new event, so the log
			// length and the simulation status detect every change.
			if len(state.Events) != lastEvents || state.Status != lastStatus {
				lastEvents, lastStatus = len(state.Events), state.Status
				send("state", gin.H{"state": state})
			}
		}
	}
}
