package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dicebank-backend/internal/models"
	"dicebank-backend/internal/services"
)

// SessionHandler hands out tokens for client sessions. All sessions share the
// one bankroll; the token only identifies the connected client.
type SessionHandler struct {
	jwtService *services.JWTService
	logger     *zap.Logger
}

func NewSessionHandler(jwtService *services.JWTService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	sessionID := models.GenerateSessionID()

	token, expiresAt, err := h.jwtService.GenerateToken(sessionID)
	if err != nil {
		h.logger.Error("failed to issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": sessionID,
		"token":      token,
		"expires_at": expiresAt,
	})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"session_id": c.GetString("session_id"),
	})
}
