package world

import (
	"maps"
	"slices"

	"github.com/udisondev/horde/internal/model"
)

// Region is one grid cell holding the objects whose position falls inside it.
type Region struct {
	key     regionKey
	objects map[uint32]*model.WorldObject // objectID → object
}

func newRegion(key regionKey) *Region {
	return &Region{
		key:     key,
		objects: make(map[uint32]*model.WorldObject),
	}
}

// RX returns region X index
func (r *Region) RX() int32 {
	return r.key.rx
}

// RY returns region Y index
func (r *Region) RY() int32 {
	return r.key.ry
}

func (r *Region) add(obj *model.WorldObject) {
	r.objects[obj.ObjectID()] = obj
}

func (r *Region) remove(objectID uint32) {
	delete(r.objects, objectID)
}

func (r *Region) isEmpty() bool {
	return len(r.objects) == 0
}

// Objects returns region objects ordered by objectID.
func (r *Region) Objects() []*model.WorldObject {
	ids := slices.Sorted(maps.Keys(r.objects))
	result := make([]*model.WorldObject, 0, len(ids))
	for _, id := range ids {
		result = append(result, r.objects[id])
	}
	return result
}
