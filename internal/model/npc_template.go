package model

import (
	"errors"
	"fmt"
	"time"
)

// ZombieTemplate is the spawn configuration applied once to a zombie before its AI starts.
type ZombieTemplate struct {
	Name           string        `yaml:"name"`
	Health         float64       `yaml:"health"`
	Damage         float64       `yaml:"damage"`
	Speed          float64       `yaml:"speed"`
	AttackCooldown time.Duration `yaml:"attack_cooldown"`
	Radius         float64       `yaml:"radius"`       // body collider
	AttackReach    float64       `yaml:"attack_reach"` // trigger collider
	SkinColor      string        `yaml:"skin_color"`   // cosmetic, "#rrggbb"
}

// DefaultZombieTemplate returns the baseline zombie (100 HP, 20 damage, 0.5s cooldown).
func DefaultZombieTemplate() ZombieTemplate {
	return ZombieTemplate{
		Name:           "walker",
		Health:         100,
		Damage:         20,
		Speed:          2.5,
		AttackCooldown: 500 * time.Millisecond,
		Radius:         0.5,
		AttackReach:    0.8,
		SkinColor:      "#6b8e23",
	}
}

// Validate checks health > 0, damage >= 0, speed > 0, cooldown > 0 and collider sizes.
func (t ZombieTemplate) Validate() error {
	var errs []error
	if t.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if t.Health <= 0 {
		errs = append(errs, fmt.Errorf("health must be > 0, got %v", t.Health))
	}
	if t.Damage < 0 {
		errs = append(errs, fmt.Errorf("damage must be >= 0, got %v", t.Damage))
	}
	if t.Speed <= 0 {
		errs = append(errs, fmt.Errorf("speed must be > 0, got %v", t.Speed))
	}
	if t.AttackCooldown <= 0 {
		errs = append(errs, fmt.Errorf("attack_cooldown must be > 0, got %v", t.AttackCooldown))
	}
	if t.Radius <= 0 || t.AttackReach <= 0 {
		errs = append(errs, fmt.Errorf("radius and attack_reach must be > 0, got %v/%v", t.Radius, t.AttackReach))
	}
	if len(errs) > 0 {
		return fmt.Errorf("template %q: %w", t.Name, errors.Join(errs...))
	}
	return nil
}
