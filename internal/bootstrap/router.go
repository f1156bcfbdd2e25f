package bootstrap

import (
	"time"

	httpapi "github.com/GoSim-25-26J-441/purple-team-sim/internal/api/http"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/logging"
	simhttp "github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/http"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Redis       *redis.Client
	DB          *pgxpool.Pool
	Sessions    *service.SessionService
	Limiter     *simhttp.RateLimiter
	Logger      *logging.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis, dep.DB)
	healthHandler.RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(dep.Sessions.Metrics().Handler()))

	routes.RegisterV1(r, routes.V1Deps{
		Sessions: dep.Sessions,
		Limiter:  dep.Limiter,
		Logger:   dep.Logger,
	})

	return r
}
