package render

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Hex parses "#rrggbb", panics on malformed palette literals
func Hex(s string) RGB {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad color " + s)
	}
	return fromColorful(c)
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend performs alpha blending: result = src*alpha + c*(1-alpha)
func Blend(c, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	return fromColorful(c.colorful().BlendRgb(src.colorful(), alpha))
}

// Gradient interpolates in Lab space, t=0 returns a, t=1 returns b
// Lab keeps perceived brightness even along the snake body
func Gradient(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return fromColorful(a.colorful().BlendLab(b.colorful(), t))
}

// Tcell converts to a true-color tcell color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
