package routes

import (
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/logging"
	simhttp "github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/http"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/service"
	"github.com/gin-gonic/gin"
)

type V1Deps struct {
	Sessions *service.SessionService
	Limiter  *simhttp.RateLimiter
	Logger   *logging.Logger
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	simHandler := simhttp.New(dep.Sessions, dep.Limiter, simhttp.WithLogger(dep.Logger))
	simHandler.Register(api.Group("/simulations"))
}
