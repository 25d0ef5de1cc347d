package models

import (
	"strings"
	"time"
)

type Side string

const (
	SideUnder Side = "under"
	SideOver  Side = "over"
)

const (
	MinTarget = 1
	MaxTarget = 99

	// Rolls are drawn from [0, RollSpace).
	RollSpace = 100
)

// NormalizeSide folds case and whitespace. The result is checked by
// BetRequest.Validate, after the wager.
func NormalizeSide(s string) Side {
	return Side(strings.ToLower(strings.TrimSpace(s)))
}

func (s Side) Valid() bool {
	return s == SideUnder || s == SideOver
}

type BetRequest struct {
	Wager  float64 `json:"wager"`
	Target int     `json:"target"`
	Side   Side    `json:"side"`
}

type BetOutcome struct {
	Roll        int     `json:"roll"`
	Won         bool    `json:"won"`
	Multiplier  float64 `json:"multiplier"`
	NewBalance  float64 `json:"new_balance"`
	Description string  `json:"description"`
}

// BetRecord is one entry of the bankroll history. Wager and Result are what
// the home screen renders; the remaining fields are metadata.
type BetRecord struct {
	ID        string    `json:"id"`
	Wager     float64   `json:"bet"`
	Result    string    `json:"result"`
	Won       bool      `json:"won"`
	Roll      int       `json:"roll"`
	CreatedAt time.Time `json:"created_at"`
}
