// Package status collects loop counters shown on the debug HUD and in logs
package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Metric keys written by the frame loop
const (
	KeyFrames       = "engine.frames"
	KeyTicks        = "engine.ticks"
	KeyTicksSkipped = "engine.ticks_skipped"
	KeySessions     = "engine.sessions"
	KeyParticles    = "particles.active"
	KeyFPS          = "engine.fps"
)

// Registry is the central metrics facade
// The loop caches pointers at construction and writes atomics directly
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Entry is one rendered metric
type Entry struct {
	Key   string
	Value string
}

// Snapshot returns every metric formatted, ints first, each group key-sorted
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.TotalCount())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out = append(out, Entry{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out = append(out, Entry{k, fmt.Sprintf("%.1f", v.Get())})
	})
	return out
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}
