package routes

import (
	"net/http"

	"recruitdesk_backend/internal/auth"
	"recruitdesk_backend/internal/handlers"
	"recruitdesk_backend/internal/middleware"
	"recruitdesk_backend/realtime"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all HTTP and websocket routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *realtime.Handler,
	tm *auth.TokenManager,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api, tm)
		appHandlers.CandidateHandler.RegisterRoutes(api, tm)
		appHandlers.NotificationHandler.RegisterRoutes(api, tm)
		appHandlers.RealtimeHandler.RegisterRoutes(api, tm)
	}

	wsGroup := ginRouter.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware(tm))
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
}
