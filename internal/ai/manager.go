package ai

import (
	"fmt"
	"log/slog"
	"slices"
)

// TickManager keeps the AI controllers of all live agents and runs their per-frame
// Update in registration order. The simulation registers UpdateAll as a frame callback.
//
// Not thread-safe: used only from the simulation loop goroutine.
type TickManager struct {
	controllers map[uint32]Controller // objectID → controller
	order       []uint32              // registration order, for deterministic updates
}

// NewTickManager creates new AI tick manager
func NewTickManager() *TickManager {
	return &TickManager{
		controllers: make(map[uint32]Controller),
	}
}

// Register registers and starts the controller for an agent.
// A controller already registered under objectID is stopped and replaced.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	if old, ok := m.controllers[objectID]; ok {
		old.Stop()
	} else {
		m.order = append(m.order, objectID)
	}
	m.controllers[objectID] = controller
	controller.Start()

	if IsDebugEnabled() {
		slog.Debug("AI controller registered",
			"objectID", objectID,
			"intention", controller.CurrentIntention())
	}
}

// Unregister stops and removes the controller.
func (m *TickManager) Unregister(objectID uint32) {
	controller, ok := m.controllers[objectID]
	if !ok {
		return
	}

	delete(m.controllers, objectID)
	m.order = slices.DeleteFunc(m.order, func(id uint32) bool { return id == objectID })
	controller.Stop()

	if IsDebugEnabled() {
		slog.Debug("AI controller unregistered", "objectID", objectID)
	}
}

// UpdateAll runs the per-frame Update of every controller.
func (m *TickManager) UpdateAll() {
	for _, id := range slices.Clone(m.order) {
		if controller, ok := m.controllers[id]; ok {
			controller.Update()
		}
	}
}

// Range calls fn for every controller in registration order until fn returns false.
func (m *TickManager) Range(fn func(objectID uint32, controller Controller) bool) {
	for _, id := range slices.Clone(m.order) {
		controller, ok := m.controllers[id]
		if !ok {
			continue
		}
		if !fn(id, controller) {
			return
		}
	}
}

// Count returns number of registered controllers
func (m *TickManager) Count() int {
	return len(m.controllers)
}

// GetController returns controller for an agent
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	controller, ok := m.controllers[objectID]
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return controller, nil
}
