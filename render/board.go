package render

import (
	"github.com/lixenwraith/vi-snake/constants"
)

// boardLayer fills the playfield and draws the border in framed mode
type boardLayer struct{}

func (boardLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	l := ctx.Layout
	buf.FillRect(l.BoardX, l.BoardY, l.BoardWidth, l.BoardHeight, RgbBoard)
	if !l.Framed {
		return
	}

	left := l.BoardX - constants.BorderWidth
	right := l.BoardX + l.BoardWidth
	top := l.BoardY - constants.BorderWidth
	bottom := l.BoardY + l.BoardHeight

	for x := left + 1; x < right; x++ {
		buf.SetWithBg(x, top, '─', RgbBorder, RgbBackground)
		buf.SetWithBg(x, bottom, '─', RgbBorder, RgbBackground)
	}
	for y := top + 1; y < bottom; y++ {
		buf.SetWithBg(left, y, '│', RgbBorder, RgbBackground)
		buf.SetWithBg(right, y, '│', RgbBorder, RgbBackground)
	}
	buf.SetWithBg(left, top, '┌', RgbBorder, RgbBackground)
	buf.SetWithBg(right, top, '┐', RgbBorder, RgbBackground)
	buf.SetWithBg(left, bottom, '└', RgbBorder, RgbBackground)
	buf.SetWithBg(right, bottom, '┘', RgbBorder, RgbBackground)
}

// gridLayer marks every cell with a faint dot when the grid option is on
type gridLayer struct{}

func (gridLayer) Render(ctx RenderContext, buf *RenderBuffer) {
	if !ctx.Frame.Settings.GridVisible {
		return
	}
	g := ctx.Frame.Grid
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sx := ctx.Layout.BoardX + x*constants.CellWidth
			sy := ctx.Layout.BoardY + y
			buf.SetFgOnly(sx, sy, '.', RgbGridDot, false)
		}
	}
}
