package handlers

import (
	"net/http"
	"os"

	"timer_diary/internal/logger"
	"timer_diary/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades the connection and subscribes it to the change feed.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		client := ws.NewClient(hub, conn)
		go client.Run()
	}
}
