package physics

import (
	"testing"
	"time"

	"orbit3d/internal/config"
	"orbit3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// twoPlanets sets up sources at x=0 and x=10 and a dynamic body at x.
func twoPlanets(t *testing.T, x float32) (w *World, a, b *RigidBody, body *RigidBody) {
	t.Helper()
	ctx := config.Default()
	ctx.IntersectionTimeout = 450 * time.Millisecond
	w = NewWorld(ctx)

	a = NewGravitySource(SphereShape(2))
	b = NewGravitySource(SphereShape(2))
	w.Add(bodyObject("a", rl.Vector3{}, a))
	w.Add(bodyObject("b", rl.Vector3{X: 10}, b))

	body = NewDynamicBody(SphereShape(0.5))
	w.Add(bodyObject("body", rl.Vector3{X: x}, body))
	return w, a, b, body
}

func TestSelectGravityBodyNoCandidates(t *testing.T) {
	w := newTestWorld()
	_, rb := dynamicBall(w)
	rb.GravityBody = 42

	if got := w.SelectGravityBody(rb, NewGravityCandidates(nil), 0.1); got != 0 || rb.GravityBody != 0 {
		t.Errorf("no candidates should select 0, got %d", got)
	}
}

func TestSelectGravityBodyAdoptsNearest(t *testing.T) {
	w, _, b, body := twoPlanets(t, 7)
	candidates := NewGravityCandidates(w.GravitySources())

	if got := w.SelectGravityBody(body, candidates, 0.1); got != b.ID() {
		t.Errorf("selected %d, want nearest %d", got, b.ID())
	}
}

func TestSelectGravityBodyHysteresis(t *testing.T) {
	w, a, b, body := twoPlanets(t, 6)
	body.GravityBody = a.ID()
	candidates := NewGravityCandidates(w.GravitySources())

	for i := 1; i <= 4; i++ {
		if got := w.SelectGravityBody(body, candidates, 0.1); got != a.ID() {
			t.Fatalf("call %d: switched to %d before the timeout", i, got)
		}
	}
	if body.VelocityGravity.UpdatesWithoutIntersection != 4 {
		t.Errorf("UpdatesWithoutIntersection = %d, want 4", body.VelocityGravity.UpdatesWithoutIntersection)
	}

	if got := w.SelectGravityBody(body, candidates, 0.1); got != b.ID() {
		t.Errorf("should switch to the nearer source after the timeout, got %d", got)
	}
	if body.VelocityGravity.TimeWithoutIntersection != 0 {
		t.Error("switching should reset the timer")
	}
}

func TestSelectGravityBodyKeepsSourceWhileStanding(t *testing.T) {
	w, a, _, body := twoPlanets(t, 6)
	body.GravityBody = a.ID()
	// A child of the current source counts as standing on it
	surface := engine.NewGameObject("surface")
	a.GetGameObject().AddChild(surface)
	body.VelocityGravity.Collision = &RaycastHit{Object: surface}

	candidates := NewGravityCandidates(w.GravitySources())
	for i := 0; i < 20; i++ {
		if got := w.SelectGravityBody(body, candidates, 0.1); got != a.ID() {
			t.Fatalf("call %d: left the source it stands on for %d", i, got)
		}
	}
}

func TestSelectGravityBodyKeepsNearest(t *testing.T) {
	w, a, _, body := twoPlanets(t, 3)
	body.GravityBody = a.ID()
	candidates := NewGravityCandidates(w.GravitySources())

	for i := 0; i < 20; i++ {
		w.SelectGravityBody(body, candidates, 0.1)
	}
	if body.GravityBody != a.ID() || body.VelocityGravity.TimeWithoutIntersection != 0 {
		t.Errorf("nearest current source should be kept with a reset timer")
	}
}

func TestSelectGravityBodyDropsStaleHandle(t *testing.T) {
	w, a, b, body := twoPlanets(t, 2)
	body.GravityBody = a.ID()

	w.Remove(a.GetGameObject())
	candidates := NewGravityCandidates(w.GravitySources())
	if got := w.SelectGravityBody(body, candidates, 0.1); got != b.ID() {
		t.Errorf("stale source should be replaced at once, got %d want %d", got, b.ID())
	}
}

func TestSourceIsNotItsOwnGravity(t *testing.T) {
	w := newTestWorld()
	moon := NewDynamicBody(SphereShape(1))
	moon.GravitySource = true
	w.Add(bodyObject("moon", rl.Vector3{}, moon))
	planet := NewGravitySource(SphereShape(3))
	w.Add(bodyObject("planet", rl.Vector3{Y: -20}, planet))

	if got := w.SelectGravityBody(moon, NewGravityCandidates(w.GravitySources()), 0.1); got != planet.ID() {
		t.Errorf("moon selected %d, want planet %d", got, planet.ID())
	}
}
