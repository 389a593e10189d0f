package render

import (
	"github.com/lixenwraith/vi-snake/engine"
)

// RenderContext provides frame state for layers, passed by value
type RenderContext struct {
	Frame  engine.Frame
	Layout Layout
}

// Layer is one stage of the render pipeline
type Layer interface {
	Render(ctx RenderContext, buf *RenderBuffer)
}

// RenderPriority determines render order. Lower values render first
type RenderPriority int

const (
	PriorityBackground RenderPriority = iota
	PriorityGrid
	PriorityEntities
	PriorityParticle
	PriorityUI
	PriorityOverlay
	PriorityDebug
)
