package services

import (
	"sync"

	"github.com/shopspring/decimal"

	"dicebank-backend/internal/models"
)

// Stats accumulates per-process betting totals. Sums are kept as decimals so
// long sessions do not drift.
type Stats struct {
	mu         sync.Mutex
	bets       int
	wins       int
	wagered    decimal.Decimal
	netProfit  decimal.Decimal
	biggestWin decimal.Decimal
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) Record(wager, balanceBefore float64, outcome models.BetOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delta := decimal.NewFromFloat(outcome.NewBalance).Sub(decimal.NewFromFloat(balanceBefore))

	s.bets++
	s.wagered = s.wagered.Add(decimal.NewFromFloat(wager))
	s.netProfit = s.netProfit.Add(delta)

	if outcome.Won {
		s.wins++
		if delta.GreaterThan(s.biggestWin) {
			s.biggestWin = delta
		}
	}
}

func (s *Stats) Snapshot() models.StatsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.StatsResponse{
		Bets:         s.bets,
		Wins:         s.wins,
		Losses:       s.bets - s.wins,
		TotalWagered: s.wagered.Round(2).InexactFloat64(),
		NetProfit:    s.netProfit.Round(2).InexactFloat64(),
		BiggestWin:   s.biggestWin.Round(2).InexactFloat64(),
	}
}
