package services

import (
	"fmt"
	"math"

	"dicebank-backend/internal/models"
)

// payoutFactor is applied to the fair multiplier; 0.95 is a 5% house edge.
const payoutFactor = 0.95

// ResolveBet computes the outcome of a single bet against balance for the
// given roll. It does not touch the store.
func ResolveBet(req models.BetRequest, balance float64, roll int) (models.BetOutcome, error) {
	if err := models.ValidateWager(req.Wager, balance); err != nil {
		return models.BetOutcome{}, err
	}
	if err := req.Validate(); err != nil {
		return models.BetOutcome{}, err
	}
	if roll < 0 || roll >= models.RollSpace {
		return models.BetOutcome{}, &models.InvalidParameterError{
			Field:  "roll",
			Reason: fmt.Sprintf("must be between 0 and %d, got %d", models.RollSpace-1, roll),
		}
	}

	won := IsWin(req.Side, req.Target, roll)

	outcome := models.BetOutcome{
		Roll: roll,
		Won:  won,
	}

	if won {
		outcome.Multiplier = Multiplier(req.Side, req.Target)
		outcome.NewBalance = balance + req.Wager*(outcome.Multiplier-1)
		outcome.Description = fmt.Sprintf("Won! Roll: %d | Payout: x%.2f", roll, outcome.Multiplier)
	} else {
		outcome.NewBalance = balance - req.Wager
		outcome.Description = fmt.Sprintf("Lost! Roll: %d", roll)
	}

	if math.IsNaN(outcome.NewBalance) || math.IsInf(outcome.NewBalance, 0) {
		return models.BetOutcome{}, fmt.Errorf("%w: wager %g at x%.2f", models.ErrBalanceOverflow, req.Wager, outcome.Multiplier)
	}

	return outcome, nil
}

// IsWin reports whether roll beats target on side. A roll equal to the
// target loses on both sides.
func IsWin(side models.Side, target, roll int) bool {
	switch side {
	case models.SideUnder:
		return roll < target
	case models.SideOver:
		return roll > target
	default:
		return false
	}
}

// Multiplier is the payout factor for a winning bet, net of house edge.
// target must be in [1,99].
func Multiplier(side models.Side, target int) float64 {
	switch side {
	case models.SideUnder:
		return (100 / float64(target)) * payoutFactor
	case models.SideOver:
		return (100 / float64(100-target)) * payoutFactor
	default:
		return 0
	}
}
