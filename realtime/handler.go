package realtime

import (
	"net/http"

	"recruitdesk_backend/internal/auth"
	"recruitdesk_backend/internal/logger"
	"recruitdesk_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to the frontend origin before exposing publicly
	},
}

// Handler upgrades authenticated requests to websocket connections.
type Handler struct {
	hub *Hub
	tm  *auth.TokenManager
}

func NewHandler(hub *Hub, tm *auth.TokenManager) *Handler {
	return &Handler{hub: hub, tm: tm}
}

// ServeWS runs behind AuthMiddleware. On connect the client receives a
// connection:established event carrying its socket id, which it then
// presents to the channel authorization endpoint.
func (h *Handler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("realtime: websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		conn:   conn,
		send:   make(chan Event, h.hub.sendBuffer),
		hub:    h.hub,
		tm:     h.tm,
	}

	h.hub.register(client)
	client.enqueue(Event{
		Event: "connection:established",
		Data:  map[string]string{"socket_id": client.ID},
	})

	go client.readPump()
	go client.writePump()
}
