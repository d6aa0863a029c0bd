package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive so cloud load balancers don't drop idle sockets.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		log.Printf("🔌 Portfolio client disconnected")
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket Error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandlePortfolioWS upgrades the connection; clients then receive
// portfolio change events until they disconnect.
func (h *WSHandler) HandlePortfolioWS(c *gin.Context) {
	if err := h.M.HandleRequest(c.Writer, c.Request); err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// BroadcastPortfolioUpdate tells every connected client the portfolio
// changed so open pages can refresh.
func (h *WSHandler) BroadcastPortfolioUpdate(eventType string, cardName string) {
	msg := []byte(`{"type": "` + eventType + `", "card": "` + cardName + `"}`)

	if err := h.M.Broadcast(msg); err != nil {
		log.Printf("⚠️ Error broadcasting portfolio update: %v", err)
	}
}
