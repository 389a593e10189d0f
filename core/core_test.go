package core

import (
	"testing"
)

// TestDirectionOpposite verifies every direction reverses onto its pair and vectors cancel out
func TestDirectionOpposite(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if d.Opposite().Opposite() != d {
			t.Errorf("%s: double opposite = %s", d, d.Opposite().Opposite())
		}
		sum := d.Vector().Add(d.Opposite().Vector())
		if sum != (Point{}) {
			t.Errorf("%s: vector + opposite vector = %+v, want zero", d, sum)
		}
	}
	if DirNone.Opposite() != DirNone {
		t.Error("DirNone should have no opposite")
	}
}

// TestDirectionVectorAxes verifies rows grow downward
func TestDirectionVectorAxes(t *testing.T) {
	start := Point{5, 5}
	cases := map[Direction]Point{
		DirUp:    {5, 4},
		DirDown:  {5, 6},
		DirLeft:  {4, 5},
		DirRight: {6, 5},
	}
	for d, want := range cases {
		if got := start.Add(d.Vector()); got != want {
			t.Errorf("%s from %+v = %+v, want %+v", d, start, got, want)
		}
	}
}

func TestGameStateString(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range GameStates {
		name := s.String()
		if name == "Unknown" {
			t.Errorf("state %d has no name", s)
		}
		if seen[name] {
			t.Errorf("duplicate state name %q", name)
		}
		seen[name] = true
	}
	if GameState(99).String() != "Unknown" {
		t.Error("out of range state should be Unknown")
	}
}

// TestHandleCrashRunsHook verifies the cleanup hook runs before exit
func TestHandleCrashRunsHook(t *testing.T) {
	var hookRan bool
	var code int
	orig := exitFunc
	exitFunc = func(c int) { code = c }
	defer func() { exitFunc = orig }()
	SetCrashHook(func() { hookRan = true })
	defer SetCrashHook(nil)

	HandleCrash("boom")

	if !hookRan {
		t.Error("crash hook did not run")
	}
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

// TestHandleCrashNil verifies a nil recovery value is ignored
func TestHandleCrashNil(t *testing.T) {
	called := false
	SetCrashHook(func() { called = true })
	defer SetCrashHook(nil)
	HandleCrash(nil)
	if called {
		t.Error("hook should not run for nil panic value")
	}
}
