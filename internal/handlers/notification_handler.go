package handlers

import (
	"net/http"
	"strconv"

	"recruitdesk_backend/internal/auth"
	"recruitdesk_backend/internal/middleware"
	"recruitdesk_backend/internal/services"
	"recruitdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup, tm *auth.TokenManager) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(tm))
	{
		notifications.GET("", h.ListNotifications)
		notifications.PATCH("", h.MarkAllRead)
		notifications.PATCH("/:notificationId", h.MarkRead)
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	criteria := dto.NotificationCriteria{
		Cursor:     c.Query("cursor"),
		Limit:      limit,
		UnreadOnly: c.Query("unread") == "1",
	}

	resp, err := h.notificationService.List(userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"items":        resp.Items,
		"next_cursor":  resp.NextCursor,
		"unread_count": resp.UnreadCount,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(userID, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
