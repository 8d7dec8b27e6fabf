package controller

import (
	"CommunityReportAPI/internal/websocket"
	"log/slog"
	"net/http"

	ws "github.com/gorilla/websocket"
)

type WebSocketController struct {
	hub *websocket.Hub
}

func NewWebSocketController(hub *websocket.Hub) *WebSocketController {
	return &WebSocketController{
		hub: hub,
	}
}

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeDashboard godoc
// @Summary      Dashboard Live Updates
// @Description  Upgrade to a WebSocket receiving report.created, report.status_updated and comment.created events.
// @Tags         websocket
// @Success      101  {string}  string  "Switching Protocols"
// @Router       /api/ws/dashboard [get]
func (c *WebSocketController) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade websocket", "error", err)
		return
	}

	client := &websocket.Client{
		Hub:  c.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	if !client.Hub.Register(client) {
		slog.Warn("Dashboard hub stopped, closing websocket")
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
