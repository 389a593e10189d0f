package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/particle"
	"github.com/lixenwraith/vi-snake/settings"
	"github.com/lixenwraith/vi-snake/status"
)

type fakeRenderer struct {
	frames  []Frame
	resizes int
}

func (r *fakeRenderer) Render(f Frame) { r.frames = append(r.frames, f) }
func (r *fakeRenderer) Resize()        { r.resizes++ }

func (r *fakeRenderer) last() Frame { return r.frames[len(r.frames)-1] }

type loopRig struct {
	*testRig
	loop   *Loop
	clock  *MockTimeProvider
	render *fakeRenderer
	reg    *status.Registry
	events chan tcell.Event
}

func newLoopRig(t *testing.T, debug bool) *loopRig {
	t.Helper()
	r := newTestRig(t)
	clock := NewMockTimeProvider(time.Unix(1700000000, 0))
	render := &fakeRenderer{}
	reg := status.NewRegistry()
	loop := NewLoop(r.m, nil, clock, render, reg, LoopConfig{FrameInterval: 16 * time.Millisecond, Debug: debug})
	return &loopRig{
		testRig: r,
		loop:    loop,
		clock:   clock,
		render:  render,
		reg:     reg,
		events:  make(chan tcell.Event, 16),
	}
}

func (lr *loopRig) key(k tcell.Key) {
	lr.events <- tcell.NewEventKey(k, 0, tcell.ModNone)
}

func (lr *loopRig) rune(r rune) {
	lr.events <- tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// step advances the clock by d and runs one frame
func (lr *loopRig) step(d time.Duration) bool {
	lr.clock.Advance(d)
	return lr.loop.Frame(lr.events)
}

func (lr *loopRig) counter(key string) int64 {
	return lr.reg.Ints.Get(key).Load()
}

// TestLoopStartsFromMenu verifies a key press reaches the machine and a frame is rendered
func TestLoopStartsFromMenu(t *testing.T) {
	lr := newLoopRig(t, false)
	lr.key(tcell.KeyEnter)
	if !lr.step(0) {
		t.Fatal("loop stopped")
	}
	if lr.m.State() != core.StatePlaying {
		t.Errorf("state = %v, want Playing", lr.m.State())
	}
	if len(lr.render.frames) != 1 || lr.render.last().State != core.StatePlaying {
		t.Errorf("rendered %d frames", len(lr.render.frames))
	}
}

// TestLoopTicksOnAccumulatedTime verifies ticks fire once a full interval has elapsed
func TestLoopTicksOnAccumulatedTime(t *testing.T) {
	lr := newLoopRig(t, false)
	lr.key(tcell.KeyEnter)
	lr.step(0)
	head := lr.m.session.model.Head()
	interval := lr.m.TickInterval()

	// Three frames short of one interval do nothing
	third := interval / 3
	for i := 0; i < 2; i++ {
		lr.step(third)
	}
	if lr.counter(status.KeyTicks) != 0 {
		t.Fatalf("ticked early")
	}
	lr.step(interval - 2*third)
	if got := lr.counter(status.KeyTicks); got != 1 {
		t.Fatalf("ticks = %d, want 1", got)
	}
	if lr.m.session.model.Head() == head {
		t.Error("snake did not move")
	}
}

// TestLoopAtMostOneTickPerFrame verifies a long frame runs one tick and drops the rest
func TestLoopAtMostOneTickPerFrame(t *testing.T) {
	lr := newLoopRig(t, false)
	lr.key(tcell.KeyEnter)
	lr.step(0)
	start := lr.m.session.model.Head()

	// dt is clamped to 250ms, at speed 10 that is two and a half intervals
	lr.step(time.Second)

	if got := lr.counter(status.KeyTicks); got != 1 {
		t.Errorf("ticks = %d, want 1", got)
	}
	if got := lr.counter(status.KeyTicksSkipped); got != 1 {
		t.Errorf("skipped = %d, want 1", got)
	}
	want := core.Point{X: start.X + 1, Y: start.Y}
	if got := lr.m.session.model.Head(); got != want {
		t.Errorf("head = %+v, want %+v", got, want)
	}
	// The leftover half interval carries into the next frame
	if lr.loop.acc >= lr.m.TickInterval() {
		t.Errorf("accumulator = %v not below interval", lr.loop.acc)
	}
}

// TestLoopPauseFreezesGameplay verifies no ticks run while paused but particles keep aging
func TestLoopPauseFreezesGameplay(t *testing.T) {
	lr := newLoopRig(t, false)
	lr.key(tcell.KeyEnter)
	lr.step(0)

	lr.rune('p')
	lr.step(50 * time.Millisecond)
	if lr.m.State() != core.StatePaused {
		t.Fatalf("state = %v, want Paused", lr.m.State())
	}
	lr.m.particles.SpawnBurst(core.Point{X: 2, Y: 2}, 5, particle.KindEat)
	before := lr.m.particles.Active()
	head := lr.m.session.model.Head()

	lr.step(100 * time.Millisecond)
	after := lr.m.particles.Active()
	if len(after) != len(before) {
		t.Fatalf("particles %d -> %d after one paused frame", len(before), len(after))
	}
	for i := range before {
		if after[i].Life >= before[i].Life {
			t.Errorf("particle %d did not age while paused", i)
		}
	}

	// Eat bursts live at most one second
	for i := 0; i < 20; i++ {
		lr.step(100 * time.Millisecond)
	}
	if n := lr.m.particles.Len(); n != 0 {
		t.Errorf("particles = %d after 2s paused, want 0", n)
	}
	if lr.m.State() != core.StatePaused {
		t.Errorf("state = %v, want Paused", lr.m.State())
	}
	if lr.m.session.model.Head() != head || lr.counter(status.KeyTicks) != 0 {
		t.Error("session advanced while paused")
	}

	// Resume starts a fresh interval
	lr.rune('p')
	lr.step(100 * time.Millisecond)
	if lr.counter(status.KeyTicks) != 0 {
		t.Error("ticked on the resume frame")
	}
}

// TestLoopParticlesExpire verifies particles age out in the menu
func TestLoopParticlesExpire(t *testing.T) {
	lr := newLoopRig(t, false)
	lr.step(0)
	lr.m.particles.SpawnBurst(core.Point{X: 2, Y: 2}, 5, particle.KindEat)

	for i := 0; i < 10; i++ {
		lr.step(200 * time.Millisecond)
	}
	if n := lr.m.particles.Len(); n != 0 {
		t.Errorf("particles = %d after 2s, want 0", n)
	}
	if lr.counter(status.KeyParticles) != 0 {
		t.Error("particle gauge not updated")
	}
}

// TestLoopCoalescesDirections verifies only one turn per frame reaches the snake
func TestLoopCoalescesDirections(t *testing.T) {
	lr := newLoopRig(t, false)
	lr.key(tcell.KeyEnter)
	lr.step(0)

	// Up then down within one frame: the later down survives
	lr.key(tcell.KeyUp)
	lr.key(tcell.KeyDown)
	lr.step(0)
	if got := lr.m.session.model.Pending(); got != core.DirDown {
		t.Errorf("pending = %v, want Down", got)
	}
}

// TestLoopQuit verifies Quit stops the loop from any state
func TestLoopQuit(t *testing.T) {
	for _, k := range []tcell.Key{tcell.KeyCtrlC, tcell.KeyCtrlQ} {
		lr := newLoopRig(t, false)
		lr.key(tcell.KeyEnter)
		lr.step(0)
		lr.key(k)
		if lr.step(16 * time.Millisecond) {
			t.Errorf("%v: loop continued after quit", k)
		}
	}
}

// TestLoopResizeForwarded verifies resize events reach the renderer
func TestLoopResizeForwarded(t *testing.T) {
	lr := newLoopRig(t, false)
	lr.events <- tcell.NewEventResize(80, 24)
	lr.step(0)
	if lr.render.resizes != 1 {
		t.Errorf("resizes = %d, want 1", lr.render.resizes)
	}
}

// TestLoopDebugSnapshot verifies debug frames carry counters
func TestLoopDebugSnapshot(t *testing.T) {
	lr := newLoopRig(t, true)
	lr.step(0)
	lr.step(16 * time.Millisecond)

	f := lr.render.last()
	found := false
	for _, e := range f.Debug {
		if e.Key == status.KeyFrames {
			found = true
			if e.Value != "2" {
				t.Errorf("frames = %s, want 2", e.Value)
			}
		}
	}
	if !found {
		t.Errorf("debug entries missing %s: %v", status.KeyFrames, f.Debug)
	}
	if lr.reg.Floats.Get(status.KeyFPS).Get() <= 0 {
		t.Error("fps not measured")
	}

	plain := newLoopRig(t, false)
	plain.step(0)
	if plain.render.last().Debug != nil {
		t.Error("debug entries without debug mode")
	}
}

// TestRunFlushesOnQuit verifies pending settings are written when the loop exits
func TestRunFlushesOnQuit(t *testing.T) {
	lr := newLoopRig(t, false)
	lr.mem.WriteErr = errors.New("disk full")
	if err := lr.set.Toggle(settings.KeyGridVisible); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if lr.mem.Writes() != 0 {
		t.Fatal("write should have failed")
	}
	lr.mem.WriteErr = nil

	lr.key(tcell.KeyCtrlQ)
	if err := lr.loop.Run(context.Background(), lr.events); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if lr.mem.Writes() != 1 {
		t.Errorf("writes = %d, want 1", lr.mem.Writes())
	}
}

// TestRunStopsOnCancel verifies context cancellation ends the loop
func TestRunStopsOnCancel(t *testing.T) {
	lr := newLoopRig(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- lr.loop.Run(ctx, lr.events) }()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
