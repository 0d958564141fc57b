package handlers

import (
	"net/http"

	"recruitdesk_backend/internal/auth"
	"recruitdesk_backend/internal/middleware"
	"recruitdesk_backend/pkg/apperrors"
	"recruitdesk_backend/realtime"

	"github.com/gin-gonic/gin"
)

// RealtimeHandler is the channel authorization endpoint: subscribers prove
// their session, then receive a grant scoped to one socket and channel.
type RealtimeHandler struct {
	*BaseHandler
	tokenManager *auth.TokenManager
}

func NewRealtimeHandler(base *BaseHandler, tm *auth.TokenManager) *RealtimeHandler {
	return &RealtimeHandler{
		BaseHandler:  base,
		tokenManager: tm,
	}
}

func (h *RealtimeHandler) RegisterRoutes(r *gin.RouterGroup, tm *auth.TokenManager) {
	rt := r.Group("/realtime")
	rt.Use(middleware.AuthMiddleware(tm))
	{
		rt.POST("/auth", h.AuthorizeChannel)
	}
}

type channelAuthRequest struct {
	SocketID string `json:"socket_id" validate:"required"`
	Channel  string `json:"channel" validate:"required"`
}

func (h *RealtimeHandler) AuthorizeChannel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req channelAuthRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if !realtime.Authorize(userID, req.Channel) {
		h.HandleServiceError(c, apperrors.NewForbiddenError("Channel access denied"))
		return
	}

	token, err := h.tokenManager.GenerateChannelToken(req.SocketID, req.Channel, userID)
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "auth": token})
}
