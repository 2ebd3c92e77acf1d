package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/chat"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/middleware"
)

type ChatHandler struct {
	responder *chat.Responder
}

func NewChatHandler(responder *chat.Responder) *ChatHandler {
	return &ChatHandler{responder: responder}
}

type ChatRequest struct {
	Message string  `json:"message" binding:"required"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Respond answers a chat message via the keyword responder.
func (h *ChatHandler) Respond(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message required"})
		return
	}

	reply, rule, err := h.responder.Respond(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	middleware.RecordChatRequest(rule)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
