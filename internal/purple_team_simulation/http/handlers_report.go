package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/report"
	"github.com/gin-gonic/gin"
)

// CreateReport builds a report of the session's current state and archives
// it when requested.
func (h *Handler) CreateReport(c *gin.Context) {
	var body reportBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	opts := report.Options{
		Severities:     body.Severities,
		EventTypes:     body.EventTypes,
		Classification: report.Classification(body.Classification),
	}
	rep, rec, err := h.svc.Report(c.Request.Context(), c.Param("id"), opts, body.Archive)
	if err != nil {
		h.writeError(c, "create report", err)
		return
	}

	resp := gin.H{"report": rep}
	if rec != nil {
		resp["archive_id"] = rec.ID
	}
	c.JSON(http.StatusOK, resp)
}

// ListReports lists the archived reports of a session, newest first. The
// payloads are omitted.
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.svc.ListReports(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "list reports", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *Handler) GetReport(c *gin.Context) {
	rec, err := h.svc.GetReport(c.Request.Context(), c.Param("report_id"))
	if err != nil {
		h.writeError(c, "get report", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": rec})
}

// GetMetricsHistory returns sampled metrics. Optional query parameters:
// from and to (RFC 3339) and metric_type.
func (h *Handler) GetMetricsHistory(c *gin.Context) {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from: expected RFC 3339"})
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to: expected RFC 3339"})
		return
	}

	points, err := h.svc.MetricsHistory(c.Request.Context(), c.Param("id"), from, to, c.Query("metric_type"))
	if err != nil {
		h.writeError(c, "get metrics history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

func parseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
