package world

import "sync/atomic"

// ObjectIDGenerator hands out unique object IDs for arena entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = invalid)
//	0x10000000 - 0x1FFFFFFF: Survivors
//	0x20000000 - 0x2FFFFFFF: Zombies
//	0x30000000 - 0xFFFFFFFF: Props and future use
type ObjectIDGenerator struct {
	nextSurvivorID atomic.Uint32
	nextZombieID   atomic.Uint32
	nextPropID     atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextSurvivorID.Store(0x10000000)
	gen.nextZombieID.Store(0x20000000)
	gen.nextPropID.Store(0x30000000)
	return gen
}

// NextSurvivorID generates next unique survivor object ID.
func (g *ObjectIDGenerator) NextSurvivorID() uint32 {
	return g.nextSurvivorID.Add(1)
}

// NextZombieID generates next unique zombie object ID.
func (g *ObjectIDGenerator) NextZombieID() uint32 {
	return g.nextZombieID.Add(1)
}

// NextPropID generates next unique prop object ID.
func (g *ObjectIDGenerator) NextPropID() uint32 {
	return g.nextPropID.Add(1)
}

// IsSurvivorID checks if objectID is in survivor range.
func IsSurvivorID(objectID uint32) bool {
	return objectID >= 0x10000000 && objectID < 0x20000000
}

// IsZombieID checks if objectID is in zombie range.
func IsZombieID(objectID uint32) bool {
	return objectID >= 0x20000000 && objectID < 0x30000000
}
