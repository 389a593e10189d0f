package engine

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/status"
)

// maxFrameDelta bounds a single frame's dt after a stall such as a suspended terminal
const maxFrameDelta = 250 * time.Millisecond

// Renderer draws one frame
type Renderer interface {
	Render(f Frame)
	// Resize is called when the terminal reports a new size
	Resize()
}

// LoopConfig tunes the frame loop
type LoopConfig struct {
	FrameInterval time.Duration
	// Debug adds status counters to every frame
	Debug bool
}

// Loop drives input, ticks, particles and rendering at a fixed frame cadence
// Gameplay ticks come from an elapsed-time accumulator, at most one per frame
type Loop struct {
	machine  *Machine
	keys     *input.KeyTable
	clock    Clock
	renderer Renderer
	cfg      LoopConfig
	registry *status.Registry

	acc       time.Duration
	last      time.Time
	started   bool
	prevState core.GameState

	frames    *atomic.Int64
	ticks     *atomic.Int64
	skipped   *atomic.Int64
	active    *atomic.Int64
	sessions  *atomic.Int64
	fps       *status.AtomicFloat
	fpsSmooth float64
}

// NewLoop wires a loop, a nil clock uses the system clock
func NewLoop(m *Machine, keys *input.KeyTable, clock Clock, r Renderer, registry *status.Registry, cfg LoopConfig) *Loop {
	if clock == nil {
		clock = NewTimeProvider()
	}
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	if registry == nil {
		registry = status.NewRegistry()
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = constants.FrameUpdateInterval
	}
	return &Loop{
		machine:   m,
		keys:      keys,
		clock:     clock,
		renderer:  r,
		cfg:       cfg,
		registry:  registry,
		prevState: m.State(),
		frames:    registry.Ints.Get(status.KeyFrames),
		ticks:     registry.Ints.Get(status.KeyTicks),
		skipped:   registry.Ints.Get(status.KeyTicksSkipped),
		active:    registry.Ints.Get(status.KeyParticles),
		sessions:  registry.Ints.Get(status.KeySessions),
		fps:       registry.Floats.Get(status.KeyFPS),
	}
}

// Run executes frames until Quit or ctx is done, then flushes persistence
func (l *Loop) Run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(l.cfg.FrameInterval)
	defer ticker.Stop()

	defer l.flush()

	// First frame immediately so the menu appears without waiting a tick
	if !l.Frame(events) {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !l.Frame(events) {
				return nil
			}
		}
	}
}

// Frame runs one loop iteration and reports whether the loop should continue
func (l *Loop) Frame(events <-chan tcell.Event) bool {
	dt := l.elapsed()
	l.frames.Add(1)

	// 1. input
	cmds := input.Drain(events, l.keys, l.machine.State(), l.handleEvent)
	cmds = input.Coalesce(cmds, l.machine.CanTurn)

	// 2. dispatch
	for _, c := range cmds {
		l.machine.Dispatch(c)
		if l.machine.QuitRequested() {
			break
		}
	}

	// 3. at most one gameplay tick
	l.advance(dt)

	// 4. particles age every frame, paused or not
	l.machine.particles.Update(dt)
	l.active.Store(int64(l.machine.particles.Len()))
	l.sessions.Store(int64(l.machine.Sessions()))

	// 5. render
	if l.renderer != nil {
		f := l.machine.Frame()
		if l.cfg.Debug {
			f.Debug = l.registry.Snapshot()
		}
		l.renderer.Render(f)
	}

	return !l.machine.QuitRequested()
}

// elapsed returns the clamped time since the previous frame
func (l *Loop) elapsed() time.Duration {
	now := l.clock.Now()
	if !l.started {
		l.started = true
		l.last = now
		return 0
	}
	dt := now.Sub(l.last)
	l.last = now
	dt = max(0, min(dt, maxFrameDelta))

	if dt > 0 {
		inst := float64(time.Second) / float64(dt)
		if l.fpsSmooth == 0 {
			l.fpsSmooth = inst
		} else {
			l.fpsSmooth += (inst - l.fpsSmooth) * 0.1
		}
		l.fps.Set(l.fpsSmooth)
	}
	return dt
}

// advance accumulates dt while Playing and runs one tick when due
// Whole intervals beyond the first are dropped and counted as skipped
func (l *Loop) advance(dt time.Duration) {
	state := l.machine.State()
	if state != core.StatePlaying {
		l.acc = 0
		l.prevState = state
		return
	}
	// Entering or resuming play starts a fresh interval
	if l.prevState != core.StatePlaying {
		l.acc = 0
		l.prevState = state
		return
	}

	interval := l.machine.TickInterval()
	if interval <= 0 {
		return
	}
	l.acc += dt
	if l.acc < interval {
		return
	}

	l.machine.Tick()
	l.ticks.Add(1)
	l.acc -= interval

	if l.acc >= interval {
		dropped := l.acc / interval
		l.skipped.Add(int64(dropped))
		l.acc -= dropped * interval
	}
	l.prevState = l.machine.State()
}

func (l *Loop) handleEvent(ev tcell.Event) {
	if _, ok := ev.(*tcell.EventResize); ok && l.renderer != nil {
		l.renderer.Resize()
	}
}

// flush persists settings and high score before exit
func (l *Loop) flush() {
	if err := l.machine.settings.Flush(); err != nil {
		log.Printf("exit: %v", err)
	}
	if err := l.machine.highScore.Flush(); err != nil {
		log.Printf("exit: %v", err)
	}
	log.Printf("exit: frames=%d ticks=%d skipped=%d sessions=%d",
		l.frames.Load(), l.ticks.Load(), l.skipped.Load(), l.machine.Sessions())
}
