package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"license-backend/internal/licenses"
	"license-backend/internal/notifications"
	"license-backend/internal/shared/config"
	"license-backend/internal/shared/metrics"
	"license-backend/internal/shared/server/middleware"
	"license-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts. Construction of the
// underlying services happens in bootstrap.
type RouterDeps struct {
	Config              config.Config
	LicenseHandler      *licenses.Handler
	NotificationHandler *notifications.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.LicenseHandler != nil {
		deps.LicenseHandler.RegisterRoutes(api)
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
