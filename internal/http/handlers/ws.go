package handlers

import (
	"net/http"
	"os"

	"taskboard/internal/logger"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades the connection and serves a live query subscription: the
// client's search/user filter is fixed at connect time, and every mutation
// pushes a fresh snapshot.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub := ws.Subscription{
			Search:  c.Query("search"),
			UserIDs: parseUserIDs(c.Query("user_ids")),
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := ws.NewClient(conn)
		go hub.Serve(client, sub)
	}
}
