package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/engine"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/repository"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/service"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	svc, err := service.NewSessionService(
		service.Config{MaxSessions: 2, Engine: engine.DefaultConfig()},
		repository.NewSessionRepository(rdb),
	)
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	return BuildRouter(RouterDeps{
		ServiceName: "purple-team-sim",
		Version:     "test",
		CORSOrigins: []string{"http://localhost:3000"},
		Redis:       rdb,
		Sessions:    svc,
	})
}

func TestBuildRouter_Routes(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		path string
		code int
	}{
		{"/health", http.StatusOK},
		{"/healthz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/simulations/scenarios", http.StatusOK},
		{"/api/v1/simulations/sessions/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, rr.Code)
			assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
		})
	}
}

func TestBuildRouter_Metrics(t *testing.T) {
	r := testRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "purple_team_sim_active_sessions")
}

func TestBuildRouter_CORSPreflight(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/simulations/sessions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetGinMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	SetGinMode("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
	SetGinMode("development")
	assert.Equal(t, gin.DebugMode, gin.Mode())
}
