package updates

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the frontend host is fixed
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler serves the live-updates websocket endpoint.
//
// Endpoint: GET /ws/updates?date=2025-06-01
// The date query is optional; without it the client receives events for
// all dates. The stream is read-only occupancy data, so no auth is
// required, same as the public day view.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws/updates", h.Subscribe)
}

func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.Register(conn, c.Query("date"))
	defer h.hub.Unregister(conn)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// drain the connection; clients do not send application messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
