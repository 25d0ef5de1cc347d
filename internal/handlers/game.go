package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dicebank-backend/internal/models"
	"dicebank-backend/internal/services"
)

type GameHandler struct {
	gameEngine *services.GameEngine
	logger     *zap.Logger
}

func NewGameHandler(gameEngine *services.GameEngine, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		gameEngine: gameEngine,
		logger:     logger,
	}
}

type placeBetRequest struct {
	Wager  json.RawMessage `json:"wager"`
	Target int             `json:"target"`
	Side   string          `json:"side"`
}

func (h *GameHandler) PlaceBet(c *gin.Context) {
	var body placeBetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	wager, err := models.ParseWager(body.Wager)
	if err != nil {
		h.respondBetError(c, err)
		return
	}

	side := models.NormalizeSide(body.Side)

	outcome, state, err := h.gameEngine.PlaceBet(c.Request.Context(), &models.BetRequest{
		Wager:  wager,
		Target: body.Target,
		Side:   side,
	})
	if err != nil {
		h.respondBetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": gin.H{
			"roll":        outcome.Roll,
			"target":      body.Target,
			"side":        side,
			"won":         outcome.Won,
			"multiplier":  outcome.Multiplier,
			"wager":       wager,
			"new_balance": outcome.NewBalance,
			"description": outcome.Description,
		},
		"state": models.NewStateResponse(state),
	})
}

func (h *GameHandler) respondBetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidWager):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid bet amount!",
			"details": err.Error(),
		})
	case errors.Is(err, models.ErrInvalidParameter):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid bet parameters",
			"details": err.Error(),
		})
	case errors.Is(err, models.ErrBalanceOverflow):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Payout out of range",
			"details": err.Error(),
		})
	default:
		h.logger.Error("failed to place bet", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to place bet",
			"details": err.Error(),
		})
	}
}

func (h *GameHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   models.NewStateResponse(h.gameEngine.State()),
	})
}

func (h *GameHandler) GetBalance(c *gin.Context) {
	state := h.gameEngine.State()

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"balance":   state.Balance,
		"formatted": models.FormatCurrency(state.Balance),
		"game_over": state.Busted(),
	})
}

// GetHistory returns bets most-recent-first. Without a limit the whole
// history is returned.
func (h *GameHandler) GetHistory(c *gin.Context) {
	history := h.gameEngine.State().History

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if limit < len(history) {
			history = history[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
		"count":   len(history),
	})
}

func (h *GameHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.gameEngine.Stats(),
	})
}
