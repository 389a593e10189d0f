// Package particle runs short-lived cosmetic effects independent of gameplay
package particle

import (
	"math"
	"time"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
)

// Kind selects velocity, lifetime and colour of a particle
type Kind uint8

const (
	KindEat Kind = iota
	KindCrash
	KindSparkle
)

func (k Kind) String() string {
	switch k {
	case KindEat:
		return "eat"
	case KindCrash:
		return "crash"
	case KindSparkle:
		return "sparkle"
	default:
		return "unknown"
	}
}

// Particle is one live effect, positions in fractional cells
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    time.Duration
	MaxLife time.Duration
	Kind    Kind
	Size    float64
}

// Alpha returns remaining life as 0..1
func (p Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return max(0, min(1, float64(p.Life)/float64(p.MaxLife)))
}

// Cell returns the grid cell the particle is over
func (p Particle) Cell() core.Point {
	return core.Point{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

type kindParams struct {
	minSpeed, maxSpeed float64
	minLife, maxLife   time.Duration
	drag               bool
}

func paramsFor(k Kind) kindParams {
	switch k {
	case KindCrash:
		return kindParams{constants.CrashMinSpeed, constants.CrashMaxSpeed, constants.CrashMinLife, constants.CrashMaxLife, true}
	case KindSparkle:
		return kindParams{constants.SparkleSpeed, constants.SparkleSpeed, constants.SparkleMinLife, constants.SparkleMaxLife, false}
	default:
		return kindParams{constants.EatMinSpeed, constants.EatMaxSpeed, constants.EatMinLife, constants.EatMaxLife, true}
	}
}
