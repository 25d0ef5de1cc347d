package services

import (
	"math/rand"

	"dicebank-backend/internal/models"
)

// Roller draws a dice roll in [0, 99].
type Roller interface {
	Roll() int
}

type RandomRoller struct{}

func (RandomRoller) Roll() int {
	return rand.Intn(models.RollSpace)
}

// RollerFunc adapts a plain function to Roller.
type RollerFunc func() int

func (f RollerFunc) Roll() int {
	return f()
}
