package view

import (
	"math"

	"github.com/udisondev/horde/internal/model"
)

// Camera maps arena coordinates onto the terminal grid.
// The whole arena is scaled to fit the view; Y grows downward on screen.
type Camera struct {
	ArenaWidth  float64
	ArenaHeight float64
	ViewWidth   int // in terminal columns
	ViewHeight  int // in terminal rows
}

// WorldToScreen converts an arena position to a cell.
// visible is false when the position falls outside the arena or the view is empty.
func (c Camera) WorldToScreen(pos model.Vec3) (sx, sy int, visible bool) {
	if c.ViewWidth <= 0 || c.ViewHeight <= 0 || c.ArenaWidth <= 0 || c.ArenaHeight <= 0 {
		return 0, 0, false
	}
	if pos.X < 0 || pos.Y < 0 || pos.X > c.ArenaWidth || pos.Y > c.ArenaHeight {
		return 0, 0, false
	}

	sx = int(math.Floor(pos.X / c.ArenaWidth * float64(c.ViewWidth)))
	sy = int(math.Floor(pos.Y / c.ArenaHeight * float64(c.ViewHeight)))

	// The far edge belongs to the last cell.
	sx = min(sx, c.ViewWidth-1)
	sy = min(sy, c.ViewHeight-1)
	return sx, sy, true
}
