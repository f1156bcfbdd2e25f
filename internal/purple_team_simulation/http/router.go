package http

import "github.com/gin-gonic/gin"

// Register registers the simulation routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	limited := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		if h.limiter == nil {
			return []gin.HandlerFunc{fn}
		}
		return []gin.HandlerFunc{h.limiter.Middleware(), fn}
	}

	rg.GET("/scenarios", h.ListScenarios)
	rg.GET("/reports/:report_id", h.GetReport)

	sessions := rg.Group("/sessions")
	sessions.POST("", limited(h.CreateSession)...)
	sessions.GET("", h.ListSessions)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.DeleteSession)
	sessions.GET("/:id/state", h.GetState)

	sessions.POST("/:id/start", limited(h.StartSession)...)
	sessions.POST("/:id/pause", limited(h.PauseSession)...)
	sessions.POST("/:id/stop", limited(h.StopSession)...)

	sessions.GET("/:id/notifications", h.ListNotifications)
	sessions.DELETE("/:id/notifications", h.ClearNotifications)
	sessions.DELETE("/:id/notifications/:nid", h.DismissNotification)
	sessions.GET("/:id/stream", h.StreamSession)

	sessions.POST("/:id/report", limited(h.CreateReport)...)
	sessions.GET("/:id/reports", h.ListReports)
	sessions.GET("/:id/metrics/history", h.GetMetricsHistory)
}
