package render

import (
	"math"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/particle"
)

// foodLayer draws the food as a two-column block
type foodLayer struct{}

func (foodLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	f := ctx.Frame
	if !f.HasFood {
		return
	}
	x, y := ctx.Layout.CellToScreen(f.Food)
	buf.SetWithBg(x, y, '(', RgbBoard, RgbFood)
	buf.SetWithBg(x+1, y, ')', RgbBoard, RgbFood)
}

// snakeLayer draws the body with a head-to-tail gradient
type snakeLayer struct{}

func (snakeLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	body := ctx.Frame.Snake
	n := len(body)
	// Tail first so the head wins on any overlap
	for i := n - 1; i >= 0; i-- {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		color := Gradient(RgbSnakeHead, RgbSnakeTail, t)
		x, y := ctx.Layout.CellToScreen(body[i])
		for dx := 0; dx < constants.CellWidth; dx++ {
			buf.SetWithBg(x+dx, y, ' ', RgbBoard, color)
		}
		if i == 0 {
			buf.SetFgOnly(x, y, ':', RgbBoard, true)
		}
	}
}

// particleLayer draws particles faded by remaining life over whatever is below
type particleLayer struct{}

func (particleLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	g := ctx.Frame.Grid
	for _, p := range ctx.Frame.Particles {
		if !g.Contains(p.Cell()) {
			continue
		}
		// Half-cell horizontal resolution
		sx := ctx.Layout.BoardX + int(math.Floor(p.X*constants.CellWidth))
		sy := ctx.Layout.BoardY + int(math.Floor(p.Y))
		alpha := p.Alpha()
		buf.BlendFg(sx, sy, particleGlyph(p, alpha), particleColor(p.Kind), alpha)
	}
}

func particleGlyph(p particle.Particle, alpha float64) rune {
	if p.Kind == particle.KindSparkle {
		return '+'
	}
	switch {
	case alpha > 0.66:
		return '*'
	case alpha > 0.33:
		return 'o'
	default:
		return '.'
	}
}

func particleColor(k particle.Kind) RGB {
	switch k {
	case particle.KindCrash:
		return RgbParticleCrash
	case particle.KindSparkle:
		return RgbParticleSparkle
	default:
		return RgbParticleEat
	}
}
