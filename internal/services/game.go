package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"dicebank-backend/internal/models"
)

type GameEngine struct {
	store  *BankrollStore
	roller Roller
	stats  *Stats
	logger *zap.Logger

	// serializes read-resolve-write of the balance
	mu sync.Mutex
}

func NewGameEngine(store *BankrollStore, roller Roller, logger *zap.Logger) *GameEngine {
	if roller == nil {
		roller = RandomRoller{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameEngine{
		store:  store,
		roller: roller,
		stats:  NewStats(),
		logger: logger,
	}
}

// PlaceBet validates req against the current balance, draws a fresh roll,
// resolves it and commits the new balance and bet record to the store. The
// returned state is the snapshot taken right after this bet was committed. On
// error the store is left untouched.
func (ge *GameEngine) PlaceBet(ctx context.Context, req *models.BetRequest) (*models.BetOutcome, models.BankrollState, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.BankrollState{}, err
	}

	ge.mu.Lock()
	defer ge.mu.Unlock()

	balance := ge.store.Balance()

	if err := models.ValidateWager(req.Wager, balance); err != nil {
		ge.logger.Info("bet rejected", zap.Float64("wager", req.Wager), zap.Float64("balance", balance), zap.Error(err))
		return nil, models.BankrollState{}, err
	}
	if err := req.Validate(); err != nil {
		ge.logger.Warn("bet rejected", zap.Int("target", req.Target), zap.String("side", string(req.Side)), zap.Error(err))
		return nil, models.BankrollState{}, err
	}

	roll := ge.roller.Roll()

	outcome, err := ResolveBet(*req, balance, roll)
	if err != nil {
		ge.logger.Error("bet not resolved", zap.Float64("wager", req.Wager), zap.Float64("balance", balance), zap.Error(err))
		return nil, models.BankrollState{}, fmt.Errorf("failed to resolve bet: %w", err)
	}

	ge.store.SetBalance(outcome.NewBalance)
	ge.store.AddBetRecord(models.BetRecord{
		ID:        models.GenerateBetID(),
		Wager:     req.Wager,
		Result:    outcome.Description,
		Won:       outcome.Won,
		Roll:      outcome.Roll,
		CreatedAt: time.Now(),
	})

	ge.stats.Record(req.Wager, balance, outcome)
	state := ge.store.GetState()

	ge.logger.Info("bet resolved",
		zap.Float64("wager", req.Wager),
		zap.Int("target", req.Target),
		zap.String("side", string(req.Side)),
		zap.Int("roll", outcome.Roll),
		zap.Bool("won", outcome.Won),
		zap.Float64("multiplier", outcome.Multiplier),
		zap.Float64("new_balance", outcome.NewBalance),
	)

	if outcome.NewBalance <= 0 {
		ge.logger.Info("bankroll exhausted")
	}

	return &outcome, state, nil
}

func (ge *GameEngine) State() models.BankrollState {
	return ge.store.GetState()
}

func (ge *GameEngine) Stats() models.StatsResponse {
	return ge.stats.Snapshot()
}
