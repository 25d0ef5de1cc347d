package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateBetID() string {
	return fmt.Sprintf("bet_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateSessionID() string {
	return uuid.New().String()
}

// ValidateWager checks 0 < wager <= balance. NaN and infinities are treated as
// non-numeric input.
func ValidateWager(wager, balance float64) error {
	switch {
	case math.IsNaN(balance) || math.IsInf(balance, 0):
		return &InvalidWagerError{Wager: wager, Balance: balance, Reason: "balance is not a finite number"}
	case math.IsNaN(wager) || math.IsInf(wager, 0):
		return &InvalidWagerError{Wager: wager, Balance: balance, Reason: "not a number"}
	case wager <= 0:
		return &InvalidWagerError{Wager: wager, Balance: balance, Reason: "must be greater than zero"}
	case wager > balance:
		return &InvalidWagerError{Wager: wager, Balance: balance, Reason: "exceeds balance"}
	}
	return nil
}

func (br *BetRequest) Validate() error {
	if br.Target < MinTarget || br.Target > MaxTarget {
		return &InvalidParameterError{
			Field:  "target",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinTarget, MaxTarget, br.Target),
		}
	}
	if !br.Side.Valid() {
		return &InvalidParameterError{
			Field:  "side",
			Reason: fmt.Sprintf("must be %q or %q, got %q", SideUnder, SideOver, br.Side),
		}
	}
	return nil
}

// ParseWager accepts a JSON number or a numeric string, the way the betting
// screen's text field submits it.
func ParseWager(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, &InvalidWagerError{Reason: "missing"}
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, &InvalidWagerError{Reason: "not a number"}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &InvalidWagerError{Reason: "not a number"}
	}
	return n, nil
}

func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
