package particle

import (
	"math"
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
)

func newTestEngine(capacity int) *Engine {
	return NewEngine(rand.New(rand.NewSource(1)), capacity)
}

// TestSpawnBurst verifies count, origin and kind ranges
func TestSpawnBurst(t *testing.T) {
	e := newTestEngine(0)
	n := e.SpawnBurst(core.Point{X: 4, Y: 7}, constants.EatBurstCount, KindEat)
	if n != constants.EatBurstCount || e.Len() != constants.EatBurstCount {
		t.Fatalf("spawned %d, Len %d, want %d", n, e.Len(), constants.EatBurstCount)
	}
	for _, p := range e.Active() {
		if p.X != 4.5 || p.Y != 7.5 {
			t.Errorf("particle origin (%v,%v), want (4.5,7.5)", p.X, p.Y)
		}
		speed := math.Hypot(p.VX, p.VY)
		if speed < constants.EatMinSpeed-1e-9 || speed > constants.EatMaxSpeed+1e-9 {
			t.Errorf("speed %v outside eat range", speed)
		}
		if p.Life < constants.EatMinLife || p.Life > constants.EatMaxLife {
			t.Errorf("life %v outside eat range", p.Life)
		}
		if p.Life != p.MaxLife || p.Alpha() != 1 {
			t.Errorf("fresh particle alpha %v", p.Alpha())
		}
		if p.Kind != KindEat {
			t.Errorf("kind = %s", p.Kind)
		}
	}
}

// TestUpdateMovesAndExpires verifies position integrates velocity and expired particles are removed
func TestUpdateMovesAndExpires(t *testing.T) {
	e := newTestEngine(0)
	e.particles = append(e.particles,
		Particle{X: 1, Y: 1, VX: 2, VY: -4, Life: time.Second, MaxLife: time.Second, Kind: KindSparkle},
		Particle{X: 0, Y: 0, Life: 100 * time.Millisecond, MaxLife: time.Second, Kind: KindSparkle},
	)

	e.Update(250 * time.Millisecond)

	if e.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", e.Len())
	}
	p := e.Active()[0]
	if math.Abs(p.X-1.5) > 1e-9 || math.Abs(p.Y-0) > 1e-9 {
		t.Errorf("position (%v,%v), want (1.5,0)", p.X, p.Y)
	}
	if p.Life != 750*time.Millisecond {
		t.Errorf("Life = %v, want 750ms", p.Life)
	}
	if math.Abs(p.Alpha()-0.75) > 1e-9 {
		t.Errorf("Alpha() = %v, want 0.75", p.Alpha())
	}
}

// TestUpdateExactExpiry verifies life reaching exactly zero removes the particle
func TestUpdateExactExpiry(t *testing.T) {
	e := newTestEngine(0)
	e.particles = append(e.particles, Particle{Life: 16 * time.Millisecond, MaxLife: time.Second})
	e.Update(16 * time.Millisecond)
	if e.Len() != 0 {
		t.Errorf("Len() = %d, want 0", e.Len())
	}
}

// TestDragSlowsBursts verifies burst particles decelerate while sparkles keep speed
func TestDragSlowsBursts(t *testing.T) {
	e := newTestEngine(0)
	e.particles = append(e.particles,
		Particle{VX: 10, Life: time.Minute, MaxLife: time.Minute, Kind: KindCrash},
		Particle{VX: 10, Life: time.Minute, MaxLife: time.Minute, Kind: KindSparkle},
	)
	e.Update(time.Second)

	got := e.Active()
	if math.Abs(got[0].VX-10*constants.ParticleDrag) > 1e-9 {
		t.Errorf("crash VX = %v, want %v", got[0].VX, 10*constants.ParticleDrag)
	}
	if got[1].VX != 10 {
		t.Errorf("sparkle VX = %v, want 10", got[1].VX)
	}
}

// TestEventuallyEmpty verifies every burst dies out within its maximum lifetime
func TestEventuallyEmpty(t *testing.T) {
	e := newTestEngine(0)
	e.SpawnBurst(core.Point{X: 1, Y: 1}, constants.CrashBurstCount, KindCrash)
	e.SpawnBurst(core.Point{X: 2, Y: 2}, constants.EatBurstCount, KindEat)
	e.SpawnSparkle(core.Point{X: 3, Y: 3})

	elapsed := time.Duration(0)
	for e.Len() > 0 && elapsed <= constants.SparkleMaxLife {
		e.Update(constants.FrameUpdateInterval)
		elapsed += constants.FrameUpdateInterval
	}
	if e.Len() != 0 {
		t.Errorf("%d particles alive after %v", e.Len(), elapsed)
	}
}

// TestCapacity verifies bursts are truncated at capacity
func TestCapacity(t *testing.T) {
	e := newTestEngine(10)
	if n := e.SpawnBurst(core.Point{}, 8, KindEat); n != 8 {
		t.Errorf("first burst spawned %d, want 8", n)
	}
	if n := e.SpawnBurst(core.Point{}, 8, KindCrash); n != 2 {
		t.Errorf("second burst spawned %d, want 2", n)
	}
	if e.SpawnSparkle(core.Point{}) {
		t.Error("sparkle should not spawn at capacity")
	}
	if e.Len() != 10 {
		t.Errorf("Len() = %d, want 10", e.Len())
	}
}

// TestClear verifies all particles are removed and the engine stays usable
func TestClear(t *testing.T) {
	e := newTestEngine(0)
	e.SpawnBurst(core.Point{}, 5, KindEat)
	e.Clear()
	if e.Len() != 0 || len(e.Active()) != 0 {
		t.Fatalf("Len() = %d after Clear", e.Len())
	}
	e.SpawnBurst(core.Point{}, 3, KindEat)
	if e.Len() != 3 {
		t.Errorf("Len() = %d after respawn, want 3", e.Len())
	}
}

// TestSparkleDriftsTowardTarget verifies ambient glints converge on the food cell
func TestSparkleDriftsTowardTarget(t *testing.T) {
	e := newTestEngine(0)
	target := core.Point{X: 10, Y: 10}
	e.SpawnSparkle(target)

	dist := func() float64 {
		p := e.Active()[0]
		return math.Hypot(p.X-10.5, p.Y-10.5)
	}
	before := dist()
	if math.Abs(before-constants.SparkleRadius) > 1e-9 {
		t.Errorf("spawn distance %v, want %v", before, constants.SparkleRadius)
	}
	e.Update(100 * time.Millisecond)
	if dist() >= before {
		t.Errorf("sparkle moved away: %v -> %v", before, dist())
	}
}

// TestActiveIsCopy verifies render snapshots cannot mutate engine state
func TestActiveIsCopy(t *testing.T) {
	e := newTestEngine(0)
	e.SpawnBurst(core.Point{}, 1, KindEat)
	snap := e.Active()
	snap[0].X = 99
	if e.Active()[0].X == 99 {
		t.Error("Active() aliases engine storage")
	}
}
