package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZombie(t *testing.T) {
	tmpl := DefaultZombieTemplate()
	z := NewZombie(7, NewVec3(1, 2, 0), tmpl)

	assert.Equal(t, uint32(7), z.ObjectID())
	assert.Equal(t, "walker", z.Name())
	assert.Equal(t, LayerZombie, z.Layer())
	assert.Equal(t, 100.0, z.Health())
	assert.Equal(t, 20.0, z.Damage())
	assert.Equal(t, 500*time.Millisecond, z.AttackCooldown())
	assert.Equal(t, "#6b8e23", z.SkinColor())
	assert.Equal(t, IntentionIdle, z.Intention())

	require.Len(t, z.Colliders(), 2)
	assert.False(t, z.Body().IsTrigger())
	assert.True(t, z.Trigger().IsTrigger())
	assert.Equal(t, tmpl.AttackReach, z.Trigger().Radius())
}

func TestZombie_IsTarget(t *testing.T) {
	z := NewZombie(7, NewVec3(0, 0, 0), DefaultZombieTemplate())

	target, ok := TargetOf(z.WorldObject)
	require.True(t, ok)
	assert.Equal(t, z.ObjectID(), target.ObjectID())
}

func TestZombie_SetupOverrides(t *testing.T) {
	z := NewZombie(7, NewVec3(0, 0, 0), DefaultZombieTemplate())
	z.ApplyDamage(40)

	tmpl := DefaultZombieTemplate()
	tmpl.Name = "brute"
	tmpl.Health = 300
	tmpl.Damage = 45
	tmpl.SkinColor = "#8b0000"
	z.Setup(tmpl)

	assert.Equal(t, "brute", z.TemplateName())
	assert.Equal(t, 300.0, z.Health())
	assert.Equal(t, 45.0, z.Damage())
	assert.Equal(t, "#8b0000", z.SkinColor())
}

func TestTargetOf_NoCapability(t *testing.T) {
	prop := NewWorldObject(3, "crate", NewVec3(0, 0, 0), LayerProp)

	_, ok := TargetOf(prop)
	assert.False(t, ok)

	_, ok = TargetOf(nil)
	assert.False(t, ok)
}
