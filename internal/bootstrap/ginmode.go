package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode selects the gin mode for APP_ENV: release in production, test
// under test, debug otherwise.
func SetGinMode(env string) {
	switch env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
