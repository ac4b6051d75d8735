package spawn

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/udisondev/horde/internal/model"
)

// maxPointAttempts bounds rejection sampling for concave or thin zones.
const maxPointAttempts = 64

// Zone is a planar polygon zombies are spawned in.
type Zone struct {
	polygon  orb.Polygon
	bound    orb.Bound
	centroid orb.Point
	area     float64
}

// NewZone builds a zone from [x, y] points. The ring is closed automatically.
func NewZone(points [][]float64) (Zone, error) {
	if len(points) < 3 {
		return Zone{}, fmt.Errorf("zone needs at least 3 points, got %d", len(points))
	}

	ring := make(orb.Ring, 0, len(points)+1)
	for i, p := range points {
		if len(p) != 2 {
			return Zone{}, fmt.Errorf("zone point %d must be [x, y], got %v", i, p)
		}
		ring = append(ring, orb.Point{p[0], p[1]})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}

	polygon := orb.Polygon{ring}
	centroid, area := planar.CentroidArea(polygon)
	if math.Abs(area) == 0 {
		return Zone{}, fmt.Errorf("zone has zero area")
	}

	return Zone{
		polygon:  polygon,
		bound:    polygon.Bound(),
		centroid: centroid,
		area:     math.Abs(area),
	}, nil
}

// Contains reports whether pos lies inside the zone (X/Y only).
func (z Zone) Contains(pos model.Vec3) bool {
	return planar.PolygonContains(z.polygon, orb.Point{pos.X, pos.Y})
}

// Area returns zone area.
func (z Zone) Area() float64 {
	return z.area
}

// Centroid returns the zone centroid at Z=0.
func (z Zone) Centroid() model.Vec3 {
	return model.NewVec3(z.centroid[0], z.centroid[1], 0)
}

// RandomPoint draws a uniform point inside the zone by rejection sampling over its bound.
// Falls back to the centroid when sampling keeps missing.
func (z Zone) RandomPoint(rng *rand.Rand) model.Vec3 {
	for range maxPointAttempts {
		p := model.NewVec3(
			z.bound.Min[0]+rng.Float64()*(z.bound.Max[0]-z.bound.Min[0]),
			z.bound.Min[1]+rng.Float64()*(z.bound.Max[1]-z.bound.Min[1]),
			0,
		)
		if z.Contains(p) {
			return p
		}
	}
	return z.Centroid()
}
