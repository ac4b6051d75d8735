package sim

import (
	"context"
	"log/slog"
	"time"
)

// Stepper advances the simulation by one fixed step.
type Stepper interface {
	Step(dt time.Duration)
}

// Loop drives a Stepper from a wall-clock ticker at a fixed frame rate.
// Every tick advances simulation time by exactly one step regardless of
// ticker jitter, which keeps the simulation deterministic.
type Loop struct {
	stepper  Stepper
	step     time.Duration
	duration time.Duration // 0 = run until canceled
	stopCh   chan struct{}
}

// NewLoop creates a loop ticking frameRate times per second.
func NewLoop(stepper Stepper, frameRate int, duration time.Duration) *Loop {
	if frameRate <= 0 {
		frameRate = 60
	}
	return &Loop{
		stepper:  stepper,
		step:     time.Second / time.Duration(frameRate),
		duration: duration,
		stopCh:   make(chan struct{}),
	}
}

// Step returns the fixed frame step.
func (l *Loop) Step() time.Duration {
	return l.step
}

// Run runs the loop (blocks until context is canceled, Stop is called or the
// configured duration of simulation time has elapsed).
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.step)
	defer ticker.Stop()

	slog.Info("simulation loop started", "step", l.step, "duration", l.duration)

	var elapsed time.Duration
	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation loop stopping", "simTime", elapsed)
			return ctx.Err()

		case <-l.stopCh:
			slog.Info("simulation loop stopped", "simTime", elapsed)
			return nil

		case <-ticker.C:
			l.stepper.Step(l.step)
			elapsed += l.step
			if l.duration > 0 && elapsed >= l.duration {
				slog.Info("simulation finished", "simTime", elapsed)
				return nil
			}
		}
	}
}

// Stop stops the loop.
func (l *Loop) Stop() {
	close(l.stopCh)
}
