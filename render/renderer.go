// Package render draws engine frames on a tcell screen
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-snake/engine"
)

type layerEntry struct {
	layer    Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Renderer coordinates the render pipeline and implements engine.Renderer
type Renderer struct {
	screen   tcell.Screen
	buffer   *RenderBuffer
	layers   []layerEntry
	regCount int
	sync     bool
}

// NewRenderer creates a renderer with the stock layers registered
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	r := &Renderer{
		screen: screen,
		buffer: NewRenderBuffer(w, h),
		layers: make([]layerEntry, 0, 8),
	}
	r.Register(boardLayer{}, PriorityBackground)
	r.Register(gridLayer{}, PriorityGrid)
	r.Register(foodLayer{}, PriorityEntities)
	r.Register(snakeLayer{}, PriorityEntities)
	r.Register(particleLayer{}, PriorityParticle)
	r.Register(hudLayer{}, PriorityUI)
	r.Register(overlayLayer{}, PriorityOverlay)
	r.Register(debugLayer{}, PriorityDebug)
	return r
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (r *Renderer) Register(l Layer, priority RenderPriority) {
	entry := layerEntry{layer: l, priority: priority, index: r.regCount}
	r.regCount++

	pos := len(r.layers)
	for i, e := range r.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}
	r.layers = append(r.layers, layerEntry{})
	copy(r.layers[pos+1:], r.layers[pos:])
	r.layers[pos] = entry
}

// Resize schedules a full repaint at the next frame
func (r *Renderer) Resize() {
	r.sync = true
}

// Render executes the pipeline: lay out, clear, draw all layers, flush
func (r *Renderer) Render(f engine.Frame) {
	w, h := r.screen.Size()
	if bw, bh := r.buffer.Size(); bw != w || bh != h {
		r.buffer.Resize(w, h)
		r.sync = true
	}
	if r.sync {
		r.screen.Sync()
		r.sync = false
	}

	r.buffer.Clear()
	ctx := RenderContext{
		Frame:  f,
		Layout: ComputeLayout(w, h, f.Grid, f.Fullscreen),
	}

	if ctx.Layout.TooSmall {
		drawTooSmall(ctx.Layout, r.buffer)
	} else {
		for _, e := range r.layers {
			e.layer.Render(ctx, r.buffer)
		}
	}

	r.buffer.Flush(r.screen)
}

var _ engine.Renderer = (*Renderer)(nil)
