package constants

import "time"

// Particle engine tuning, positions in cells and velocities in cells per second
const (
	// MaxParticles caps the live particle set, bursts beyond it are truncated
	MaxParticles = 512

	EatBurstCount   = 15
	CrashBurstCount = 20

	EatMinSpeed   = 4.0
	EatMaxSpeed   = 12.0
	CrashMinSpeed = 6.0
	CrashMaxSpeed = 16.0

	// SparkleChance is the per-tick probability of an ambient sparkle near food
	SparkleChance = 0.1
	// SparkleRadius is the spawn distance from the food cell
	SparkleRadius = 2.0
	SparkleSpeed  = 1.5

	// ParticleDrag is the fraction of velocity retained per second
	ParticleDrag = 0.05
)

// Particle lifetime ranges
const (
	EatMinLife     = 500 * time.Millisecond
	EatMaxLife     = 1000 * time.Millisecond
	CrashMinLife   = 600 * time.Millisecond
	CrashMaxLife   = 1200 * time.Millisecond
	SparkleMinLife = 1000 * time.Millisecond
	SparkleMaxLife = 1500 * time.Millisecond
)
