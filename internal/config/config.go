package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/horde/internal/model"
)

// DefaultPath is used when HORDE_CONFIG is not set.
const DefaultPath = "config/hordesim.yaml"

// Simulation holds all configuration for the arena simulation.
type Simulation struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	LogFile  string `yaml:"log_file"`  // used while the viewer owns the terminal

	Loop      LoopConfig             `yaml:"simulation"`
	AI        AIConfig               `yaml:"ai"`
	Arena     ArenaConfig            `yaml:"arena"`
	Templates []model.ZombieTemplate `yaml:"templates"`
	Spawns    []SpawnConfig          `yaml:"spawns"`
	Survivors []SurvivorConfig       `yaml:"survivors"`

	Database DatabaseConfig `yaml:"database"`
	Audio    AudioConfig    `yaml:"audio"`
	View     ViewConfig     `yaml:"view"`
}

// LoopConfig controls the real-time driver.
type LoopConfig struct {
	FrameRate     int           `yaml:"frame_rate"`     // frames per second (default: 60)
	Duration      time.Duration `yaml:"duration"`       // 0 = run until signal
	SnapshotEvery int           `yaml:"snapshot_every"` // publish a snapshot every N frames (default: 2)
}

// AIConfig holds perception settings shared by all zombies.
type AIConfig struct {
	ScanInterval time.Duration `yaml:"scan_interval"` // default: 250ms
	ScanRadius   float64       `yaml:"scan_radius"`   // default: 20
	TargetLayers []string      `yaml:"target_layers"` // default: [survivor]
	TargetPolicy string        `yaml:"target_policy"` // first | nearest
	Debug        bool          `yaml:"debug"`
}

// ArenaConfig describes the playable area.
type ArenaConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	CellSize float64 `yaml:"cell_size"` // spatial index region size
}

// SpawnConfig describes one spawn group.
type SpawnConfig struct {
	Template     string        `yaml:"template"`
	Count        int32         `yaml:"count"`
	Zone         [][]float64   `yaml:"zone"` // polygon ring, [x, y] points
	CorpseDelay  time.Duration `yaml:"corpse_delay"`
	RespawnDelay time.Duration `yaml:"respawn_delay"` // 0 = no respawn
}

// SurvivorConfig describes one passive target.
type SurvivorConfig struct {
	Name     string    `yaml:"name"`
	Health   float64   `yaml:"health"`
	Position []float64 `yaml:"position"` // [x, y] or [x, y, z]
	Radius   float64   `yaml:"radius"`
}

// Vec3 returns Position as a vector.
func (s SurvivorConfig) Vec3() model.Vec3 {
	var v model.Vec3
	if len(s.Position) > 0 {
		v.X = s.Position[0]
	}
	if len(s.Position) > 1 {
		v.Y = s.Position[1]
	}
	if len(s.Position) > 2 {
		v.Z = s.Position[2]
	}
	return v
}

// DatabaseConfig holds PostgreSQL connection parameters for the combat journal.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	BatchSize     int           `yaml:"batch_size"`     // events per COPY (default: 256)
	FlushInterval time.Duration `yaml:"flush_interval"` // default: 1s
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// AudioConfig toggles sound output.
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ViewConfig toggles the terminal viewer.
type ViewConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultSimulation returns Simulation config with sensible defaults:
// one walker spawn of 5 zombies around the arena center and two survivors.
func DefaultSimulation() Simulation {
	walker := model.DefaultZombieTemplate()

	return Simulation{
		LogLevel: "info",
		LogFile:  "hordesim.log",
		Loop: LoopConfig{
			FrameRate:     60,
			SnapshotEvery: 2,
		},
		AI: AIConfig{
			ScanInterval: 250 * time.Millisecond,
			ScanRadius:   20,
			TargetLayers: []string{"survivor"},
			TargetPolicy: "first",
		},
		Arena: ArenaConfig{
			Width:    80,
			Height:   40,
			CellSize: 16,
		},
		Templates: []model.ZombieTemplate{walker},
		Spawns: []SpawnConfig{
			{
				Template:     walker.Name,
				Count:        5,
				Zone:         [][]float64{{30, 10}, {50, 10}, {50, 30}, {30, 30}},
				CorpseDelay:  10 * time.Second,
				RespawnDelay: 15 * time.Second,
			},
		},
		Survivors: []SurvivorConfig{
			{Name: "ellie", Health: 100, Position: []float64{10, 10, 0}, Radius: 0.5},
			{Name: "joel", Health: 150, Position: []float64{70, 30, 0}, Radius: 0.5},
		},
		Database: DatabaseConfig{
			Enabled:       false,
			Host:          "127.0.0.1",
			Port:          5432,
			User:          "horde",
			Password:      "horde",
			DBName:        "horde",
			SSLMode:       "disable",
			BatchSize:     256,
			FlushInterval: time.Second,
		},
		Audio: AudioConfig{Enabled: false},
		View:  ViewConfig{Enabled: true},
	}
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Template returns the zombie template with the given name.
func (c Simulation) Template(name string) (model.ZombieTemplate, bool) {
	for _, t := range c.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return model.ZombieTemplate{}, false
}

// Validate checks the whole configuration and reports every offending field.
func (c Simulation) Validate() error {
	var errs []error

	if c.Loop.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("simulation.frame_rate must be > 0, got %d", c.Loop.FrameRate))
	}
	if c.Loop.Duration < 0 {
		errs = append(errs, fmt.Errorf("simulation.duration must be >= 0, got %s", c.Loop.Duration))
	}
	if c.Loop.SnapshotEvery <= 0 {
		errs = append(errs, fmt.Errorf("simulation.snapshot_every must be > 0, got %d", c.Loop.SnapshotEvery))
	}

	if c.AI.ScanInterval <= 0 {
		errs = append(errs, fmt.Errorf("ai.scan_interval must be > 0, got %s", c.AI.ScanInterval))
	}
	if c.AI.ScanRadius <= 0 {
		errs = append(errs, fmt.Errorf("ai.scan_radius must be > 0, got %v", c.AI.ScanRadius))
	}
	if _, err := model.ParseLayers(c.AI.TargetLayers); err != nil {
		errs = append(errs, fmt.Errorf("ai.target_layers: %w", err))
	}
	switch c.AI.TargetPolicy {
	case "", "first", "nearest":
	default:
		errs = append(errs, fmt.Errorf("ai.target_policy must be first or nearest, got %q", c.AI.TargetPolicy))
	}

	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena size must be > 0, got %vx%v", c.Arena.Width, c.Arena.Height))
	}

	names := make(map[string]bool, len(c.Templates))
	for _, t := range c.Templates {
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
		}
		if names[t.Name] {
			errs = append(errs, fmt.Errorf("template %q defined twice", t.Name))
		}
		names[t.Name] = true
	}

	for i, s := range c.Spawns {
		if !names[s.Template] {
			errs = append(errs, fmt.Errorf("spawns[%d]: unknown template %q", i, s.Template))
		}
		if s.Count <= 0 {
			errs = append(errs, fmt.Errorf("spawns[%d].count must be > 0, got %d", i, s.Count))
		}
		if len(s.Zone) < 3 {
			errs = append(errs, fmt.Errorf("spawns[%d].zone needs at least 3 points, got %d", i, len(s.Zone)))
		}
		for j, p := range s.Zone {
			if len(p) != 2 {
				errs = append(errs, fmt.Errorf("spawns[%d].zone[%d] must be [x, y]", i, j))
			}
		}
		if s.CorpseDelay < 0 || s.RespawnDelay < 0 {
			errs = append(errs, fmt.Errorf("spawns[%d] delays must be >= 0", i))
		}
	}

	for i, s := range c.Survivors {
		if s.Health <= 0 {
			errs = append(errs, fmt.Errorf("survivors[%d].health must be > 0, got %v", i, s.Health))
		}
		if s.Radius <= 0 {
			errs = append(errs, fmt.Errorf("survivors[%d].radius must be > 0, got %v", i, s.Radius))
		}
		if n := len(s.Position); n < 2 || n > 3 {
			errs = append(errs, fmt.Errorf("survivors[%d].position must be [x, y] or [x, y, z]", i))
		}
	}

	if c.Database.Enabled {
		if c.Database.BatchSize <= 0 {
			errs = append(errs, fmt.Errorf("database.batch_size must be > 0, got %d", c.Database.BatchSize))
		}
		if c.Database.FlushInterval <= 0 {
			errs = append(errs, fmt.Errorf("database.flush_interval must be > 0, got %s", c.Database.FlushInterval))
		}
	}

	return errors.Join(errs...)
}
