package ai

import (
	"testing"
	"time"

	"github.com/udisondev/horde/internal/model"
	"github.com/udisondev/horde/internal/sim"
)

type fakeMover struct {
	stopped  bool
	requests []model.Vec3
	stops    int
}

func newFakeMover() *fakeMover {
	return &fakeMover{stopped: true}
}

func (m *fakeMover) RequestMove(dest model.Vec3) {
	m.stopped = false
	m.requests = append(m.requests, dest)
}

func (m *fakeMover) Stop() {
	m.stopped = true
	m.stops++
}

func (m *fakeMover) IsStopped() bool {
	return m.stopped
}

type fakePresenter struct {
	hitPoints   []model.Vec3
	hitNormals  []model.Vec3
	sounds      []model.Sound
	hasTarget   bool
	flagUpdates int
}

func (p *fakePresenter) PlayHitEffect(point, normal model.Vec3) {
	p.hitPoints = append(p.hitPoints, point)
	p.hitNormals = append(p.hitNormals, normal)
}

func (p *fakePresenter) PlaySound(sound model.Sound) {
	p.sounds = append(p.sounds, sound)
}

func (p *fakePresenter) SetHasTarget(hasTarget bool) {
	p.hasTarget = hasTarget
	p.flagUpdates++
}

// fakeWorld answers scans in insertion order, like a collaborator with its own ordering.
type fakeWorld struct {
	objects []*model.WorldObject
	scans   int
}

func (w *fakeWorld) add(obj *model.WorldObject) {
	w.objects = append(w.objects, obj)
}

func (w *fakeWorld) remove(objectID uint32) {
	for i, obj := range w.objects {
		if obj.ObjectID() == objectID {
			w.objects = append(w.objects[:i], w.objects[i+1:]...)
			return
		}
	}
}

func (w *fakeWorld) scan(origin model.Vec3, radius float64, mask model.Layer) []*model.WorldObject {
	w.scans++
	var result []*model.WorldObject
	for _, obj := range w.objects {
		if !mask.Has(obj.Layer()) {
			continue
		}
		for _, c := range obj.Colliders() {
			if c.Enabled() && c.IntersectsSphere(origin, radius) {
				result = append(result, obj)
				break
			}
		}
	}
	return result
}

func (w *fakeWorld) get(objectID uint32) (*model.WorldObject, bool) {
	for _, obj := range w.objects {
		if obj.ObjectID() == objectID {
			return obj, true
		}
	}
	return nil, false
}

type testRig struct {
	sched     *sim.Scheduler
	world     *fakeWorld
	mover     *fakeMover
	presenter *fakePresenter
	zombie    *model.Zombie
	ai        *ZombieAI
}

func newTestTemplate() model.ZombieTemplate {
	tmpl := model.DefaultZombieTemplate()
	tmpl.Health = 100
	tmpl.Damage = 20
	tmpl.AttackCooldown = 500 * time.Millisecond
	return tmpl
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	r := &testRig{
		sched:     sim.NewScheduler(),
		world:     &fakeWorld{},
		mover:     newFakeMover(),
		presenter: &fakePresenter{},
	}
	r.zombie = model.NewZombie(100001, model.NewVec3(0, 0, 0), newTestTemplate())
	r.world.add(r.zombie.WorldObject)

	r.ai = NewZombieAI(r.zombie, r.sched, r.world.scan, r.world.get, r.mover)
	r.ai.SetPresenter(r.presenter)
	return r
}

func (r *testRig) addSurvivor(t *testing.T, objectID uint32, x, y, z float64) *model.Survivor {
	t.Helper()
	s := model.NewSurvivor(objectID, "survivor", model.NewVec3(x, y, z), 100, 0.5)
	r.world.add(s.WorldObject)
	return s
}

// advanceTo moves simulation time to at, in 50ms frames, running Update each frame.
func (r *testRig) advanceTo(at time.Duration) {
	for r.sched.Now() < at {
		step := min(50*time.Millisecond, at-r.sched.Now())
		r.sched.Advance(step)
		r.ai.Update()
	}
}
