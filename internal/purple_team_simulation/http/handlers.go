package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps service errors to HTTP responses.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, domain.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
	case errors.Is(err, domain.ErrEngineClosed):
		c.JSON(http.StatusGone, gin.H{"error": "simulation engine has been disposed"})
	case errors.Is(err, domain.ErrSessionLimit):
		c.JSON(http.StatusConflict, gin.H{"error": "session limit reached"})
	case errors.Is(err, domain.ErrReportConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "report id already archived for another session"})
	case errors.Is(err, domain.ErrInvalidClassification), errors.Is(err, domain.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report archive is not configured"})
	default:
		h.log.FromContext(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + op})
	}
}

func requireUser(c *gin.Context) (string, bool) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return userID, true
}

// CreateSession creates a session with a preparing engine
func (h *Handler) CreateSession(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var body createSessionBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := h.svc.CreateSession(c.Request.Context(), &domain.CreateSessionRequest{
		UserID:   userID,
		Name:     body.Name,
		Seed:     body.Seed,
		Metadata: body.Metadata,
	})
	if err != nil {
		h.writeError(c, "create session", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": sess})
}

// ListSessions lists the sessions of the current user
func (h *Handler) ListSessions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sessions, err := h.svc.ListSessions(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "list sessions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *Handler) GetSession(c *gin.Context) {
	sess, err := h.svc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "get session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// DeleteSession disposes the engine and removes the session
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.svc.Dispose(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "delete session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session deleted successfully"})
}

func (h *Handler) GetState(c *gin.Context) {
	state, err := h.svc.State(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "get state", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

type commandFn func(ctx context.Context, sessionID string) (*domain.Session, bool, error)

func (h *Handler) StartSession(c *gin.Context) { h.runCommand(c, "start session", h.svc.Start) }

func (h *Handler) PauseSession(c *gin.Context) { h.runCommand(c, "pause session", h.svc.Pause) }

func (h *Handler) StopSession(c *gin.Context) { h.runCommand(c, "stop session", h.svc.Stop) }

// runCommand answers 200 whether or not the command changed the status;
// "applied" tells the caller which.
func (h *Handler) runCommand(c *gin.Context, op string, fn commandFn) {
	sess, applied, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, commandResponse{Session: sess, Applied: applied})
}

func (h *Handler) ListNotifications(c *gin.Context) {
	notes, err := h.svc.Notifications(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "list notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notes})
}

func (h *Handler) ClearNotifications(c *gin.Context) {
	if err := h.svc.ClearNotifications(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "clear notifications", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DismissNotification(c *gin.Context) {
	ok, err := h.svc.DismissNotification(c.Request.Context(), c.Param("id"), c.Param("nid"))
	if err != nil {
		h.writeError(c, "dismiss notification", err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": toScenarioDTOs(h.svc.Catalogue().Scenarios())})
}
