package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Assistant is the narrow surface the HTTP layer needs from the agent.
type Assistant interface {
	Answer(ctx context.Context, userID, query string) (string, error)
	ClearMemory(ctx context.Context, userID string) error
}

// ChatHandler exposes the chat and memory endpoints.
type ChatHandler struct {
	assistant Assistant
	log       zerolog.Logger
}

func NewChatHandler(assistant Assistant, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		log:       log.With().Str("component", "chat-handler").Logger(),
	}
}

type chatRequest struct {
	UserID   string `json:"user_id"`
	Query    string `json:"query"`
	UseAgent bool   `json:"use_agent"`
}

type chatResponse struct {
	Response   string  `json:"response"`
	StatusCode int     `json:"status_code"`
	Query      string  `json:"query"`
	UserID     string  `json:"user_id"`
	Timestamp  float64 `json:"timestamp"`
}

// Ask answers a product catalog question with memory support.
// Conversations are remembered per user_id; follow-up questions resolve
// references against previous context.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query cannot be empty"})
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID cannot be empty"})
		return
	}

	h.log.Info().Str("user_id", req.UserID).Str("query", req.Query).Msg("received query")

	answer, err := h.assistant.Answer(c.Request.Context(), req.UserID, req.Query)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to process query")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing query: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Response:   answer,
		StatusCode: http.StatusOK,
		Query:      req.Query,
		UserID:     req.UserID,
		Timestamp:  float64(time.Now().UnixMilli()) / 1000,
	})
}

// ClearMemory drops the conversation history for a user. Idempotent;
// memory is best-effort so storage failures are logged, not surfaced.
func (h *ChatHandler) ClearMemory(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID cannot be empty"})
		return
	}

	if err := h.assistant.ClearMemory(c.Request.Context(), userID); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to clear conversation memory")
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared", "user_id": userID})
}

// Health returns the static capability descriptor.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "CapAmerica AI",
		"version":  "1.0.0",
		"features": []string{"product_catalog", "conversation_memory", "agent_tools"},
	})
}
