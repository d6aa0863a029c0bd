package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleece-labs/fleece-api/models"
	"github.com/fleece-labs/fleece-api/services"
	"github.com/fleece-labs/fleece-api/utils"
)

type ChatHandler struct {
	Chat *services.ChatService
}

// SendMessage runs one conversation turn. The API key rides in the
// request body, goes straight to the upstream call and is never stored.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Chat.Converse(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrMissingAPIKey) || errors.Is(err, services.ErrUnsupportedModel) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.SafeError("Chat turn failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant is unavailable right now"})
		return
	}

	utils.LogChatTurn(resp.Model, len(req.Message), len(resp.Reply))
	c.JSON(http.StatusOK, resp)
}

type newChatRequest struct {
	SessionToken string `json:"session_token" binding:"required"`
}

// NewChat archives the current conversation and forgets its memory.
// The archived turns come back so the client can show past sessions.
func (h *ChatHandler) NewChat(c *gin.Context) {
	var req newChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	archived := h.Chat.NewConversation(req.SessionToken)
	c.JSON(http.StatusOK, gin.H{"archived": archived})
}

// GetHistory returns the remembered turns for a session token.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	token := c.Query("session_token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_token is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"turns": h.Chat.History(token)})
}
