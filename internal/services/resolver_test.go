package services_test

import (
	"errors"
	"math"
	"testing"

	"dicebank-backend/internal/models"
	"dicebank-backend/internal/services"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestResolveBetWinUnder(t *testing.T) {
	req := models.BetRequest{Wager: 100, Target: 50, Side: models.SideUnder}

	outcome, err := services.ResolveBet(req, 1000, 10)
	if err != nil {
		t.Fatalf("ResolveBet failed: %v", err)
	}

	if !outcome.Won {
		t.Fatal("Roll 10 under 50 should win")
	}
	if !almostEqual(outcome.Multiplier, 1.9) {
		t.Errorf("Expected multiplier 1.9, got %v", outcome.Multiplier)
	}
	if !almostEqual(outcome.NewBalance, 1090) {
		t.Errorf("Expected new balance 1090, got %v", outcome.NewBalance)
	}
	if outcome.Description != "Won! Roll: 10 | Payout: x1.90" {
		t.Errorf("Unexpected description %q", outcome.Description)
	}
}

func TestResolveBetLossUnder(t *testing.T) {
	req := models.BetRequest{Wager: 100, Target: 50, Side: models.SideUnder}

	outcome, err := services.ResolveBet(req, 1000, 60)
	if err != nil {
		t.Fatalf("ResolveBet failed: %v", err)
	}

	if outcome.Won {
		t.Fatal("Roll 60 under 50 should lose")
	}
	if outcome.Multiplier != 0 {
		t.Errorf("Loss should have zero multiplier, got %v", outcome.Multiplier)
	}
	if outcome.NewBalance != 900 {
		t.Errorf("Expected new balance 900, got %v", outcome.NewBalance)
	}
	if outcome.Description != "Lost! Roll: 60" {
		t.Errorf("Unexpected description %q", outcome.Description)
	}
}

func TestResolveBetOverDescription(t *testing.T) {
	req := models.BetRequest{Wager: 10, Target: 55, Side: models.SideOver}

	outcome, err := services.ResolveBet(req, 100, 82)
	if err != nil {
		t.Fatalf("ResolveBet failed: %v", err)
	}
	// (100/45)*0.95 = 2.111...
	if outcome.Description != "Won! Roll: 82 | Payout: x2.11" {
		t.Errorf("Unexpected description %q", outcome.Description)
	}
}

func TestWinCondition(t *testing.T) {
	for target := models.MinTarget; target <= models.MaxTarget; target++ {
		for roll := 0; roll < models.RollSpace; roll++ {
			if got, want := services.IsWin(models.SideUnder, target, roll), roll < target; got != want {
				t.Fatalf("UNDER target=%d roll=%d: got win=%v, want %v", target, roll, got, want)
			}
			if got, want := services.IsWin(models.SideOver, target, roll), roll > target; got != want {
				t.Fatalf("OVER target=%d roll=%d: got win=%v, want %v", target, roll, got, want)
			}
		}

		for _, side := range []models.Side{models.SideUnder, models.SideOver} {
			outcome, err := services.ResolveBet(models.BetRequest{Wager: 1, Target: target, Side: side}, 10, target)
			if err != nil {
				t.Fatalf("ResolveBet failed: %v", err)
			}
			if outcome.Won {
				t.Errorf("Roll equal to target %d should lose on %s", target, side)
			}
		}
	}
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		side   models.Side
		target int
		want   float64
	}{
		{models.SideUnder, 50, 1.9},
		{models.SideOver, 50, 1.9},
		{models.SideUnder, 1, 95},
		{models.SideOver, 99, 95},
		{models.SideUnder, 99, (100.0 / 99) * 0.95},
		{models.SideOver, 1, (100.0 / 99) * 0.95},
		{models.SideUnder, 25, 3.8},
		{models.SideOver, 75, 3.8},
	}

	for _, tt := range tests {
		if got := services.Multiplier(tt.side, tt.target); !almostEqual(got, tt.want) {
			t.Errorf("Multiplier(%s, %d) = %v, want %v", tt.side, tt.target, got, tt.want)
		}
	}
}

func TestResolveBetInvalidWager(t *testing.T) {
	for _, wager := range []float64{0, -1, 1000.5, math.NaN()} {
		req := models.BetRequest{Wager: wager, Target: 50, Side: models.SideUnder}
		_, err := services.ResolveBet(req, 1000, 10)
		if !errors.Is(err, models.ErrInvalidWager) {
			t.Errorf("wager %v: expected ErrInvalidWager, got %v", wager, err)
		}
	}
}

func TestResolveBetInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		req  models.BetRequest
		roll int
	}{
		{"target zero", models.BetRequest{Wager: 1, Target: 0, Side: models.SideUnder}, 10},
		{"target hundred", models.BetRequest{Wager: 1, Target: 100, Side: models.SideOver}, 10},
		{"unknown side", models.BetRequest{Wager: 1, Target: 50, Side: "sideways"}, 10},
		{"roll too high", models.BetRequest{Wager: 1, Target: 50, Side: models.SideUnder}, 100},
		{"negative roll", models.BetRequest{Wager: 1, Target: 50, Side: models.SideUnder}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.ResolveBet(tt.req, 1000, tt.roll)
			var paramErr *models.InvalidParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("Expected *InvalidParameterError, got %v", err)
			}
		})
	}
}

func TestResolveBetWholeBankroll(t *testing.T) {
	req := models.BetRequest{Wager: 1000, Target: 50, Side: models.SideUnder}

	outcome, err := services.ResolveBet(req, 1000, 75)
	if err != nil {
		t.Fatalf("ResolveBet failed: %v", err)
	}
	if outcome.NewBalance != 0 {
		t.Errorf("Losing the whole bankroll should leave 0, got %v", outcome.NewBalance)
	}
}

func TestResolveBetOverflow(t *testing.T) {
	req := models.BetRequest{Wager: 1e308, Target: 1, Side: models.SideUnder}

	_, err := services.ResolveBet(req, 1.5e308, 0)
	if !errors.Is(err, models.ErrBalanceOverflow) {
		t.Errorf("Expected ErrBalanceOverflow, got %v", err)
	}
}

func TestRandomRollerRange(t *testing.T) {
	var roller services.RandomRoller
	for i := 0; i < 10000; i++ {
		if r := roller.Roll(); r < 0 || r > 99 {
			t.Fatalf("Roll out of range: %d", r)
		}
	}
}
