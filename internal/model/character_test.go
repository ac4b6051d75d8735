package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLivingEntity_ApplyDamage(t *testing.T) {
	tests := []struct {
		name       string
		damage     []float64
		wantHealth float64
		wantDead   bool
	}{
		{"single hit", []float64{20}, 80, false},
		{"exact kill", []float64{50, 50}, 0, true},
		{"overkill clamps", []float64{150}, 0, true},
		{"negative ignored", []float64{-10}, 100, false},
		{"zero ignored", []float64{0}, 100, false},
		{"after death ignored", []float64{100, 30}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewLivingEntity(100)
			for _, d := range tt.damage {
				e.ApplyDamage(d)
			}
			assert.Equal(t, tt.wantHealth, e.Health())
			assert.Equal(t, tt.wantDead, e.IsDead())
		})
	}
}

func TestLivingEntity_DeathHookOnce(t *testing.T) {
	e := NewLivingEntity(30)
	deaths := 0
	e.SetDeathHook(func() { deaths++ })

	e.ApplyDamage(40)
	e.ApplyDamage(40)
	assert.False(t, e.Die(), "second Die is a no-op")

	assert.Equal(t, 1, deaths)
}

func TestLivingEntity_OnDamageRunsHookFirst(t *testing.T) {
	e := NewLivingEntity(20)
	var sawHealth float64
	var sawDead bool
	e.SetDamageHook(func(amount float64, _, _ Vec3) {
		sawHealth = e.Health()
		sawDead = e.IsDead()
	})

	e.OnDamage(20, Vec3{}, Vec3{})

	assert.Equal(t, 20.0, sawHealth, "hook sees pre-damage health")
	assert.False(t, sawDead)
	assert.True(t, e.IsDead())
}

func TestLivingEntity_SetMaxHealth(t *testing.T) {
	e := NewLivingEntity(100)
	e.ApplyDamage(50)

	e.SetMaxHealth(250)
	assert.Equal(t, 250.0, e.Health())
	assert.Equal(t, 100.0, e.HealthPercentage())

	e.SetMaxHealth(0)
	assert.Equal(t, 1.0, e.MaxHealth())
}
