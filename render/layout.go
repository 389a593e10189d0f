package render

import (
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
	"github.com/lixenwraith/vi-snake/game"
)

// Layout places the board on the screen
// Framed adds a border, the HUD row above and the footer row below
type Layout struct {
	ScreenWidth  int
	ScreenHeight int

	// BoardX, BoardY is the screen position of grid cell 0,0
	BoardX int
	BoardY int
	// BoardWidth, BoardHeight are in screen columns and rows
	BoardWidth  int
	BoardHeight int

	Framed bool

	// TooSmall is set when the screen cannot hold the layout
	TooSmall   bool
	NeedWidth  int
	NeedHeight int
}

// ComputeLayout centers the board for the screen size and layout mode
func ComputeLayout(screenWidth, screenHeight int, grid game.Grid, fullscreen bool) Layout {
	l := Layout{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		BoardWidth:   grid.Width * constants.CellWidth,
		BoardHeight:  grid.Height,
		Framed:       !fullscreen,
	}

	l.NeedWidth, l.NeedHeight = l.BoardWidth, l.BoardHeight
	if l.Framed {
		l.NeedWidth += 2 * constants.BorderWidth
		l.NeedHeight += 2*constants.BorderWidth + constants.HUDHeight + constants.FooterHeight
	}
	if screenWidth < l.NeedWidth || screenHeight < l.NeedHeight {
		l.TooSmall = true
		return l
	}

	l.BoardX = (screenWidth - l.NeedWidth) / 2
	l.BoardY = (screenHeight - l.NeedHeight) / 2
	if l.Framed {
		l.BoardX += constants.BorderWidth
		l.BoardY += constants.BorderWidth + constants.HUDHeight
	}
	return l
}

// CellToScreen returns the screen position of the left column of grid cell p
func (l Layout) CellToScreen(p core.Point) (int, int) {
	return l.BoardX + p.X*constants.CellWidth, l.BoardY + p.Y
}

// HUDRow is the screen row above the top border
func (l Layout) HUDRow() int {
	return l.BoardY - constants.BorderWidth - constants.HUDHeight
}

// FooterRow is the screen row below the bottom border
func (l Layout) FooterRow() int {
	return l.BoardY + l.BoardHeight + constants.BorderWidth
}
