package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"claimdesk.app/server/internal/http/handler"
	"claimdesk.app/server/internal/http/middleware"
	"claimdesk.app/server/internal/service"
)

// maxFilesPerRequest sizes the request body limit for claim creation.
const maxFilesPerRequest = 10

type RouterConfig struct {
	DashboardURL string
	IsProduction bool
	// Ping reports whether the service's dependencies are reachable.
	Ping func(ctx context.Context) error
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		if cfg.Ping != nil {
			if err := cfg.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authService := services.Auth()
	authHandler := handler.NewAuthHandler(authService, cfg.DashboardURL, cfg.IsProduction)
	AuthRouter(router.Group("/auth"), authHandler)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAuth(authService))
	{
		dashboardHandler := handler.NewDashboardHandler(services.Dashboard())
		v1.GET("/dashboard", dashboardHandler.Get)

		claimHandler := handler.NewClaimHandler(services.Claims())
		ClaimRouter(v1.Group("/claims"), claimHandler, services.MaxUploadBytes()*maxFilesPerRequest+1<<20)

		notificationHandler := handler.NewNotificationHandler(services.Notifications())
		NotificationRouter(v1.Group("/notifications"), notificationHandler)
	}
}
