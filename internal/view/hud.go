package view

import (
	"fmt"
	"strings"

	"github.com/udisondev/horde/internal/game"
)

// StatusLine formats the first HUD row: time, frame and combat counters.
func StatusLine(snap game.Snapshot) string {
	st := snap.Stats
	return fmt.Sprintf("t=%.1fs frame=%d zombies=%d survivors=%d attacks=%d kills=%d/%d  [q] quit",
		snap.Time.Seconds(),
		snap.Frame,
		st.ZombiesAlive,
		st.SurvivorsAlive,
		st.Attacks,
		st.SurvivorDeaths,
		st.ZombieDeaths)
}

// SurvivorLine formats the second HUD row: health of every survivor.
func SurvivorLine(snap game.Snapshot) string {
	var parts []string
	for _, e := range snap.Entities {
		if e.Kind != game.KindSurvivor {
			continue
		}
		if e.Dead {
			parts = append(parts, fmt.Sprintf("%s dead (%d hits)", e.Name, e.Hits))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %.0f/%.0f", e.Name, e.Health, e.MaxHealth))
	}
	return strings.Join(parts, "  ")
}
