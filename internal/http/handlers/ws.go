package handlers

import (
	"net/http"

	"ledger_service/internal/logger"
	"ledger_service/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Feed upgrades the connection and streams ledger events until the
// client disconnects.
func (h *Handler) Feed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(h.Hub, conn)
	h.Hub.Register(client)
	client.Run()
}
