// Package game holds the snake and food model
package game

import (
	"fmt"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/core"
)

// Grid is the fixed playfield of Width x Height cells
type Grid struct {
	Width  int
	Height int
}

// NewGrid validates dimensions against the minimum playable size
func NewGrid(width, height int) (Grid, error) {
	if width < constants.MinGridWidth || height < constants.MinGridHeight {
		return Grid{}, fmt.Errorf("grid %dx%d below minimum %dx%d",
			width, height, constants.MinGridWidth, constants.MinGridHeight)
	}
	return Grid{Width: width, Height: height}, nil
}

// Contains reports whether p lies on the grid
func (g Grid) Contains(p core.Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Center returns the middle cell
func (g Grid) Center() core.Point {
	return core.Point{X: g.Width / 2, Y: g.Height / 2}
}
