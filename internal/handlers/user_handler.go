package handlers

import (
	"net/http"

	"recruitdesk_backend/internal/auth"
	"recruitdesk_backend/internal/middleware"
	"recruitdesk_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, tm *auth.TokenManager) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(tm))
	{
		users.GET("/search", h.SearchUsers)
	}
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	items, err := h.userService.Search(c.Query("q"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}
