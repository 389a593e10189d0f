package particle

import (
	"math"
	"time"

	"golang.org/x/exp/rand"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
)

// Engine owns the live particle set
// Not safe for concurrent use, driven from the frame loop only
type Engine struct {
	particles []Particle
	capacity  int
	rng       *rand.Rand
}

// NewEngine creates an engine holding at most capacity particles
func NewEngine(rng *rand.Rand, capacity int) *Engine {
	if capacity <= 0 {
		capacity = constants.MaxParticles
	}
	return &Engine{
		particles: make([]Particle, 0, capacity),
		capacity:  capacity,
		rng:       rng,
	}
}

// SpawnBurst emits count particles from the centre of cell pos with a radial spread
// Returns how many were created, bursts are truncated at capacity
func (e *Engine) SpawnBurst(pos core.Point, count int, kind Kind) int {
	params := paramsFor(kind)
	cx, cy := float64(pos.X)+0.5, float64(pos.Y)+0.5

	spawned := 0
	for i := 0; i < count && len(e.particles) < e.capacity; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := e.between(params.minSpeed, params.maxSpeed)
		life := e.lifetime(params)
		e.particles = append(e.particles, Particle{
			X:       cx,
			Y:       cy,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    life,
			MaxLife: life,
			Kind:    kind,
			Size:    e.between(0.5, 1),
		})
		spawned++
	}
	return spawned
}

// SpawnSparkle emits one glint on a ring around target drifting toward it
func (e *Engine) SpawnSparkle(target core.Point) bool {
	if len(e.particles) >= e.capacity {
		return false
	}
	params := paramsFor(KindSparkle)
	angle := e.rng.Float64() * 2 * math.Pi
	cx, cy := float64(target.X)+0.5, float64(target.Y)+0.5
	life := e.lifetime(params)
	e.particles = append(e.particles, Particle{
		X:       cx + math.Cos(angle)*constants.SparkleRadius,
		Y:       cy + math.Sin(angle)*constants.SparkleRadius,
		VX:      -math.Cos(angle) * params.minSpeed,
		VY:      -math.Sin(angle) * params.minSpeed,
		Life:    life,
		MaxLife: life,
		Kind:    KindSparkle,
		Size:    0.5,
	})
	return true
}

// Update advances every particle by dt and drops expired ones
func (e *Engine) Update(dt time.Duration) {
	if dt <= 0 || len(e.particles) == 0 {
		return
	}
	secs := dt.Seconds()
	decay := math.Pow(constants.ParticleDrag, secs)

	live := e.particles[:0]
	for _, p := range e.particles {
		p.X += p.VX * secs
		p.Y += p.VY * secs
		if paramsFor(p.Kind).drag {
			p.VX *= decay
			p.VY *= decay
		}
		p.Life -= dt
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	e.particles = live
}

// Clear removes all particles
func (e *Engine) Clear() {
	e.particles = e.particles[:0]
}

// Len returns the live particle count
func (e *Engine) Len() int {
	return len(e.particles)
}

// Active returns a copy of the live particles for rendering
func (e *Engine) Active() []Particle {
	return append([]Particle(nil), e.particles...)
}

func (e *Engine) between(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func (e *Engine) lifetime(p kindParams) time.Duration {
	span := p.maxLife - p.minLife
	if span <= 0 {
		return p.minLife
	}
	return p.minLife + time.Duration(e.rng.Int63n(int64(span)+1))
}
