package world

import (
	"math"

	"github.com/udisondev/horde/internal/model"
)

// DefaultCellSize is the side of one grid region in simulation units.
// Comparable to the default scan radius, so a scan touches at most a 3×3..4×4 window.
const DefaultCellSize = 16.0

// regionKey identifies a grid region. The grid is 2D (X/Y); Z is ignored for indexing.
type regionKey struct {
	rx, ry int32
}

// coordToRegion converts a position to its region index.
// Formula: floor(coord / cellSize)
func coordToRegion(pos model.Vec3, cellSize float64) regionKey {
	return regionKey{
		rx: int32(math.Floor(pos.X / cellSize)),
		ry: int32(math.Floor(pos.Y / cellSize)),
	}
}

// regionWindow returns the inclusive region index range covering a square of
// half-size extent around center.
func regionWindow(center model.Vec3, extent, cellSize float64) (minKey, maxKey regionKey) {
	minKey = coordToRegion(model.NewVec3(center.X-extent, center.Y-extent, 0), cellSize)
	maxKey = coordToRegion(model.NewVec3(center.X+extent, center.Y+extent, 0), cellSize)
	return minKey, maxKey
}
