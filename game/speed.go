package game

import (
	"time"

	"github.com/lixenwraith/vi-snake/constants"
)

// SpeedPolicy maps score to steps per second as a step function
// Every PointsPerTier points add Increment, capped at Max
type SpeedPolicy struct {
	PointsPerTier int
	Increment     int
	Max           int
}

// DefaultSpeedPolicy returns the stock speed curve
func DefaultSpeedPolicy() SpeedPolicy {
	return SpeedPolicy{
		PointsPerTier: constants.DefaultPointsPerTier,
		Increment:     constants.DefaultTierIncrement,
		Max:           constants.DefaultMaxSpeed,
	}
}

// Speed returns steps per second for the score
// With increase disabled or a non-positive tier size the base speed is returned
func (p SpeedPolicy) Speed(base, score int, increase bool) int {
	base = max(1, base)
	if !increase || p.PointsPerTier <= 0 || p.Increment <= 0 {
		return base
	}
	s := base + (score/p.PointsPerTier)*p.Increment
	// A cap below base never slows the game
	return min(s, max(p.Max, base))
}

// TickInterval converts steps per second into the gameplay tick period
func TickInterval(speed int) time.Duration {
	return time.Second / time.Duration(max(1, speed))
}
