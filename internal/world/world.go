package world

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/udisondev/horde/internal/model"
)

// World is the spatial index of the arena: a sparse 2D grid of regions.
// It answers sphere queries for perception and collider overlaps for contacts.
//
// Not thread-safe: owned by the simulation loop goroutine.
type World struct {
	cellSize  float64
	regions   map[regionKey]*Region
	objects   map[uint32]*model.WorldObject // objectID → object
	location  map[uint32]regionKey          // objectID → current region
	maxRadius float64                       // largest collider radius ever added
}

// New creates an empty world with the given region size (DefaultCellSize if <= 0).
func New(cellSize float64) *World {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &World{
		cellSize: cellSize,
		regions:  make(map[regionKey]*Region),
		objects:  make(map[uint32]*model.WorldObject),
		location: make(map[uint32]regionKey),
	}
}

// AddObject adds object to the world.
func (w *World) AddObject(obj *model.WorldObject) error {
	if obj == nil || obj.ObjectID() == 0 {
		return fmt.Errorf("invalid object")
	}
	if _, exists := w.objects[obj.ObjectID()]; exists {
		return fmt.Errorf("object %d already in world", obj.ObjectID())
	}

	w.objects[obj.ObjectID()] = obj
	w.place(obj)

	for _, c := range obj.Colliders() {
		w.maxRadius = max(w.maxRadius, c.Radius())
	}
	return nil
}

// RemoveObject removes object from the world. Unknown IDs are ignored.
func (w *World) RemoveObject(objectID uint32) {
	if _, ok := w.objects[objectID]; !ok {
		return
	}
	w.unplace(objectID)
	delete(w.objects, objectID)
}

// GetObject returns object by ID.
func (w *World) GetObject(objectID uint32) (*model.WorldObject, bool) {
	obj, ok := w.objects[objectID]
	return obj, ok
}

// MoveObject sets the object position and re-indexes it if it crossed a region border.
// Objects not in the world are only repositioned.
func (w *World) MoveObject(obj *model.WorldObject, pos model.Vec3) {
	obj.SetPosition(pos)

	oldKey, ok := w.location[obj.ObjectID()]
	if !ok {
		return
	}
	if coordToRegion(pos, w.cellSize) == oldKey {
		return
	}
	w.unplace(obj.ObjectID())
	w.place(obj)
}

// QueryNearby returns objects in mask with at least one enabled collider intersecting
// the sphere (origin, radius). Results are ordered by objectID.
func (w *World) QueryNearby(origin model.Vec3, radius float64, mask model.Layer) []*model.WorldObject {
	var result []*model.WorldObject

	w.forEachInWindow(origin, radius+w.maxRadius, func(obj *model.WorldObject) {
		if !mask.Has(obj.Layer()) {
			return
		}
		for _, c := range obj.Colliders() {
			if c.Enabled() && c.IntersectsSphere(origin, radius) {
				result = append(result, obj)
				return
			}
		}
	})

	slices.SortFunc(result, func(a, b *model.WorldObject) int {
		return cmp.Compare(a.ObjectID(), b.ObjectID())
	})
	return result
}

// Overlapping returns enabled colliders of other objects that overlap c.
// Returns nil when c is disabled. Ordered by owner objectID.
func (w *World) Overlapping(c *model.Collider) []*model.Collider {
	if c == nil || !c.Enabled() {
		return nil
	}

	self := c.Owner().ObjectID()
	var result []*model.Collider

	w.forEachInWindow(c.Center(), c.Radius()+w.maxRadius, func(obj *model.WorldObject) {
		if obj.ObjectID() == self {
			return
		}
		for _, other := range obj.Colliders() {
			if other.Enabled() && c.Overlaps(other) {
				result = append(result, other)
			}
		}
	})

	slices.SortStableFunc(result, func(a, b *model.Collider) int {
		return cmp.Compare(a.Owner().ObjectID(), b.Owner().ObjectID())
	})
	return result
}

// Objects returns all objects ordered by objectID.
func (w *World) Objects() []*model.WorldObject {
	ids := slices.Sorted(maps.Keys(w.objects))
	result := make([]*model.WorldObject, 0, len(ids))
	for _, id := range ids {
		result = append(result, w.objects[id])
	}
	return result
}

// ObjectCount returns total number of objects in world
func (w *World) ObjectCount() int {
	return len(w.objects)
}

// RegionCount returns number of non-empty regions
func (w *World) RegionCount() int {
	return len(w.regions)
}

// CellSize returns the grid region size.
func (w *World) CellSize() float64 {
	return w.cellSize
}

func (w *World) place(obj *model.WorldObject) {
	key := coordToRegion(obj.Position(), w.cellSize)
	region, ok := w.regions[key]
	if !ok {
		region = newRegion(key)
		w.regions[key] = region
	}
	region.add(obj)
	w.location[obj.ObjectID()] = key
}

func (w *World) unplace(objectID uint32) {
	key, ok := w.location[objectID]
	if !ok {
		return
	}
	delete(w.location, objectID)

	region, ok := w.regions[key]
	if !ok {
		return
	}
	region.remove(objectID)
	if region.isEmpty() {
		delete(w.regions, key)
	}
}

// forEachInWindow visits every object in regions overlapping the square (center ± extent).
func (w *World) forEachInWindow(center model.Vec3, extent float64, fn func(*model.WorldObject)) {
	minKey, maxKey := regionWindow(center, extent, w.cellSize)

	// Sparse grid: when the window is larger than the populated set, walk regions instead.
	windowCells := int64(maxKey.rx-minKey.rx+1) * int64(maxKey.ry-minKey.ry+1)
	if windowCells > int64(len(w.regions)) {
		for key, region := range w.regions {
			if key.rx < minKey.rx || key.rx > maxKey.rx || key.ry < minKey.ry || key.ry > maxKey.ry {
				continue
			}
			for _, obj := range region.objects {
				fn(obj)
			}
		}
		return
	}

	for rx := minKey.rx; rx <= maxKey.rx; rx++ {
		for ry := minKey.ry; ry <= maxKey.ry; ry++ {
			region, ok := w.regions[regionKey{rx: rx, ry: ry}]
			if !ok {
				continue
			}
			for _, obj := range region.objects {
				fn(obj)
			}
		}
	}
}
