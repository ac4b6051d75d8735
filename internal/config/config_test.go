package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hordesim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultSimulation_Valid(t *testing.T) {
	cfg := DefaultSimulation()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 250*time.Millisecond, cfg.AI.ScanInterval)
	assert.Equal(t, 20.0, cfg.AI.ScanRadius)
	assert.Equal(t, "first", cfg.AI.TargetPolicy)

	tmpl, ok := cfg.Template("walker")
	require.True(t, ok)
	assert.Equal(t, 100.0, tmpl.Health)
}

func TestLoadSimulation_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadSimulation(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultSimulation(), cfg)
}

func TestLoadSimulation_Overrides(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
simulation:
  frame_rate: 30
  duration: 90s
ai:
  scan_interval: 100ms
  target_policy: nearest
  target_layers: [survivor, prop]
templates:
  - name: brute
    health: 300
    damage: 45
    speed: 1.5
    attack_cooldown: 1.2s
    radius: 0.7
    attack_reach: 1.1
    skin_color: "#8b0000"
spawns:
  - template: brute
    count: 2
    zone: [[0, 0], [10, 0], [10, 10]]
    corpse_delay: 5s
survivors:
  - name: bill
    health: 80
    position: [1, 2]
    radius: 0.4
database:
  enabled: true
  host: db
  port: 5433
  user: u
  password: p
  dbname: horde
  sslmode: require
`)

	cfg, err := LoadSimulation(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.Loop.FrameRate)
	assert.Equal(t, 90*time.Second, cfg.Loop.Duration)
	assert.Equal(t, 2, cfg.Loop.SnapshotEvery, "unset keys keep defaults")
	assert.Equal(t, 100*time.Millisecond, cfg.AI.ScanInterval)
	assert.Equal(t, []string{"survivor", "prop"}, cfg.AI.TargetLayers)

	require.Len(t, cfg.Templates, 1)
	assert.Equal(t, 1200*time.Millisecond, cfg.Templates[0].AttackCooldown)
	require.Len(t, cfg.Spawns, 1)
	assert.Equal(t, 5*time.Second, cfg.Spawns[0].CorpseDelay)
	assert.Zero(t, cfg.Spawns[0].RespawnDelay)

	require.Len(t, cfg.Survivors, 1)
	assert.Equal(t, 2.0, cfg.Survivors[0].Vec3().Y)
	assert.Zero(t, cfg.Survivors[0].Vec3().Z)

	assert.Equal(t, "postgres://u:p@db:5433/horde?sslmode=require", cfg.Database.DSN())
	assert.Equal(t, 256, cfg.Database.BatchSize)
}

func TestLoadSimulation_ParseError(t *testing.T) {
	path := writeConfig(t, "simulation: [not, a, map")

	_, err := LoadSimulation(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoadSimulation_ValidationError(t *testing.T) {
	path := writeConfig(t, `
ai:
  target_policy: random
spawns:
  - template: ghoul
    count: 0
    zone: [[0, 0], [1, 1]]
`)

	_, err := LoadSimulation(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "ai.target_policy")
	assert.ErrorContains(t, err, `unknown template "ghoul"`)
	assert.ErrorContains(t, err, "spawns[0].count")
	assert.ErrorContains(t, err, "spawns[0].zone needs at least 3 points")
}

func TestSimulation_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Simulation)
		wantErr string
	}{
		{"frame rate", func(c *Simulation) { c.Loop.FrameRate = 0 }, "simulation.frame_rate"},
		{"scan radius", func(c *Simulation) { c.AI.ScanRadius = -1 }, "ai.scan_radius"},
		{"layers", func(c *Simulation) { c.AI.TargetLayers = []string{"ghost"} }, "ai.target_layers"},
		{"arena", func(c *Simulation) { c.Arena.Width = 0 }, "arena size"},
		{"duplicate template", func(c *Simulation) { c.Templates = append(c.Templates, c.Templates[0]) }, "defined twice"},
		{"survivor position", func(c *Simulation) { c.Survivors[0].Position = []float64{1} }, "survivors[0].position"},
		{"batch size", func(c *Simulation) {
			c.Database.Enabled = true
			c.Database.BatchSize = 0
		}, "database.batch_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSimulation()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoadSimulation_SampleConfig(t *testing.T) {
	cfg, err := LoadSimulation(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)

	assert.Len(t, cfg.Templates, 2)
	assert.Len(t, cfg.Spawns, 2)
	assert.Len(t, cfg.Survivors, 3)

	runner, ok := cfg.Template("runner")
	require.True(t, ok)
	assert.Equal(t, 350*time.Millisecond, runner.AttackCooldown)
	assert.Zero(t, cfg.Spawns[1].RespawnDelay)
}
