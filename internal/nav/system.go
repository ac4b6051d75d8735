package nav

import (
	"slices"
	"time"
)

// System owns the agents of the arena and steps them every frame in registration order.
type System struct {
	agents map[uint32]*Agent
	order  []uint32
}

// NewSystem creates an empty movement system.
func NewSystem() *System {
	return &System{
		agents: make(map[uint32]*Agent),
	}
}

// Add registers agent, replacing any agent for the same object.
func (s *System) Add(agent *Agent) {
	id := agent.ObjectID()
	if _, exists := s.agents[id]; !exists {
		s.order = append(s.order, id)
	}
	s.agents[id] = agent
}

// Remove unregisters the agent of objectID.
func (s *System) Remove(objectID uint32) {
	if _, ok := s.agents[objectID]; !ok {
		return
	}
	delete(s.agents, objectID)
	s.order = slices.DeleteFunc(s.order, func(id uint32) bool { return id == objectID })
}

// Get returns the agent of objectID.
func (s *System) Get(objectID uint32) (*Agent, bool) {
	agent, ok := s.agents[objectID]
	return agent, ok
}

// Count returns number of agents.
func (s *System) Count() int {
	return len(s.agents)
}

// Step moves every agent by dt.
func (s *System) Step(dt time.Duration) {
	for _, id := range s.order {
		s.agents[id].Step(dt)
	}
}
