package spawn

import (
	"log/slog"
	"slices"

	"github.com/udisondev/horde/internal/model"
	"github.com/udisondev/horde/internal/sim"
)

// onZombieDeath is the ZombieAI death callback: the corpse stays for the spawn's
// corpse delay, then is removed and, if the spawn respawns, replaced after the respawn delay.
func (m *Manager) onZombieDeath(zombie *model.Zombie) {
	spawn := zombie.Spawn()
	if spawn == nil {
		return
	}
	m.movers.Remove(zombie.ObjectID())

	task := m.sched.After(spawn.CorpseDelay(), func() {
		delete(m.corpses, zombie.ObjectID())
		m.DespawnZombie(zombie)
		if spawn.DoRespawn() {
			m.scheduleRespawn(spawn)
		}
	})
	m.corpses[zombie.ObjectID()] = task

	slog.Debug("corpse removal scheduled",
		"objectID", zombie.ObjectID(),
		"spawnID", spawn.SpawnID(),
		"delay", spawn.CorpseDelay())
}

// scheduleRespawn schedules one replacement spawn after the spawn's respawn delay.
func (m *Manager) scheduleRespawn(spawn *model.Spawn) {
	var task *sim.Task
	task = m.sched.After(spawn.RespawnDelay(), func() {
		m.respawns[spawn.SpawnID()] = slices.DeleteFunc(m.respawns[spawn.SpawnID()], func(t *sim.Task) bool {
			return t == task
		})
		m.respawn(spawn)
	})
	m.respawns[spawn.SpawnID()] = append(m.respawns[spawn.SpawnID()], task)

	slog.Debug("respawn scheduled",
		"spawnID", spawn.SpawnID(),
		"template", spawn.TemplateName(),
		"delay", spawn.RespawnDelay())
}

func (m *Manager) respawn(spawn *model.Spawn) {
	if spawn.IsFull() {
		slog.Debug("respawn skipped (spawn full)",
			"spawnID", spawn.SpawnID(),
			"currentCount", spawn.CurrentCount(),
			"maximumCount", spawn.MaximumCount())
		return
	}

	g, ok := m.group(spawn)
	if !ok {
		return
	}

	zombie, err := m.DoSpawn(g)
	if err != nil {
		slog.Error("respawn failed",
			"spawnID", spawn.SpawnID(),
			"template", spawn.TemplateName(),
			"error", err)
		return
	}

	slog.Info("zombie respawned",
		"objectID", zombie.ObjectID(),
		"spawnID", spawn.SpawnID())
}

// CancelRespawns cancels every pending respawn of spawnID.
func (m *Manager) CancelRespawns(spawnID int64) {
	for _, t := range m.respawns[spawnID] {
		t.Stop()
	}
	delete(m.respawns, spawnID)

	slog.Debug("respawns cancelled", "spawnID", spawnID)
}

// PendingRespawns returns number of scheduled respawns of spawnID.
func (m *Manager) PendingRespawns(spawnID int64) int {
	return len(m.respawns[spawnID])
}

// PendingCorpses returns number of corpses waiting for removal.
func (m *Manager) PendingCorpses() int {
	return len(m.corpses)
}
