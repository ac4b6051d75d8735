package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/horde/internal/ai"
	"github.com/udisondev/horde/internal/audio"
	"github.com/udisondev/horde/internal/config"
	"github.com/udisondev/horde/internal/db"
	"github.com/udisondev/horde/internal/game"
	"github.com/udisondev/horde/internal/sim"
	"github.com/udisondev/horde/internal/view"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level and output
	cfgPath := config.DefaultPath
	if p := os.Getenv("HORDE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	logOut, closeLog, err := logOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable AI debug logging if log level is debug or ai.debug is set
	ai.EnableDebugLogging(logLevel == slog.LevelDebug || cfg.AI.Debug)

	slog.Info("hordesim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"frame_rate", cfg.Loop.FrameRate,
		"duration", cfg.Loop.Duration)

	var opts []game.Option

	var journal *db.Journal
	if cfg.Database.Enabled {
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		journal = db.NewJournal(db.NewJournalRepository(database.Pool()), cfg.Database.BatchSize, cfg.Database.FlushInterval)
		opts = append(opts, game.WithRecorder(journal))
	}

	if cfg.Audio.Enabled {
		sounds := audio.NewSoundManager()
		if err := sounds.Initialize(); err != nil {
			// Non-fatal, the simulation runs without sound
			slog.Warn("audio initialization failed", "error", err)
		} else {
			defer sounds.Cleanup()
			opts = append(opts, game.WithSoundPlayer(sounds))
		}
	}

	simulation, err := game.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}

	var viewer *view.Viewer
	if cfg.View.Enabled {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initializing screen: %w", err)
		}
		defer screen.Fini()
		viewer = view.NewViewer(screen, simulation.Snapshots())
	}

	loop := sim.NewLoop(simulation, cfg.Loop.FrameRate, cfg.Loop.Duration)

	g, gctx := errgroup.WithContext(ctx)

	// Journal and viewer stop when the loop returns.
	auxCtx, stopAux := context.WithCancel(gctx)
	defer stopAux()

	g.Go(func() error {
		defer stopAux()
		if err := loop.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation loop: %w", err)
		}
		return nil
	})

	if journal != nil {
		g.Go(func() error {
			slog.Info("starting combat journal",
				"batchSize", cfg.Database.BatchSize,
				"flushInterval", cfg.Database.FlushInterval)
			if err := journal.Run(auxCtx); err != nil {
				return fmt.Errorf("combat journal: %w", err)
			}
			return nil
		})
	}

	if viewer != nil {
		g.Go(func() error {
			return viewer.Run(auxCtx)
		})
	}

	err = g.Wait()

	stats := simulation.Stats()
	slog.Info("simulation summary",
		"simTime", simulation.Now(),
		"attacks", stats.Attacks,
		"zombieDeaths", stats.ZombieDeaths,
		"survivorDeaths", stats.SurvivorDeaths,
		"zombiesAlive", stats.ZombiesAlive,
		"survivorsAlive", stats.SurvivorsAlive)
	if journal != nil {
		slog.Info("combat journal summary",
			"written", journal.Written(),
			"dropped", journal.Dropped(),
			"failed", journal.Failed())
	}

	if err != nil && !errors.Is(err, view.ErrQuit) {
		return err
	}
	return nil
}

// logOutput returns the log destination: stdout, or the log file while the viewer
// owns the terminal.
func logOutput(cfg config.Simulation) (io.Writer, func(), error) {
	if !cfg.View.Enabled || cfg.LogFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
