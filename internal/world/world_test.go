package world

import (
	"testing"

	"orbit3d/internal/config"
	"orbit3d/internal/engine"
	"orbit3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func planetObject(w *World, pos rl.Vector3, radius float32) *engine.GameObject {
	g := engine.NewGameObject("planet")
	g.Transform.Position = pos
	g.AddComponent(NewAppearance(rl.SkyBlue))
	rb := w.Physics.NewRigidBody(physics.SphereShape(radius))
	rb.GravitySource = true
	g.AddComponent(rb)
	return g
}

func TestSceneEventsDrivePhysics(t *testing.T) {
	w := New(config.Default())
	planet := planetObject(w, rl.Vector3{}, 5)
	w.Scene.AddGameObject(planet)

	if w.Physics.GravityCount() != 1 || !w.Physics.IndexContains(planet) {
		t.Fatal("attaching a planet should register it with physics")
	}
	if a := engine.GetComponent[*Appearance](planet); !a.Idle() {
		t.Error("gravity source appearance should start its idle pulse")
	}

	moon := planetObject(w, rl.Vector3{X: 3}, 1)
	w.Scene.Attach(planet, moon)
	if w.Physics.GravityCount() != 2 {
		t.Errorf("attached child not registered, gravity count %d", w.Physics.GravityCount())
	}

	w.Scene.RemoveGameObject(planet)
	if w.Physics.BodyCount() != 0 || w.Physics.Index().Len() != 0 {
		t.Errorf("detaching should unregister the subtree: bodies=%d index=%d",
			w.Physics.BodyCount(), w.Physics.Index().Len())
	}
}

func TestSpawnAndDespawn(t *testing.T) {
	w := New(config.Default())
	w.Scene.AddGameObject(planetObject(w, rl.Vector3{}, 5))

	for i := 0; i < 3; i++ {
		w.SpawnBall(rl.Vector3{Y: 10 + float32(i)*3}, 0.5, rl.Red)
	}
	if w.Physics.DynamicCount() != 3 {
		t.Fatalf("DynamicCount() = %d, want 3", w.Physics.DynamicCount())
	}
	if n := len(w.Bodies()); n != 4 {
		t.Errorf("Bodies() = %d, want 4", n)
	}

	if n := w.Despawn(); n != 3 {
		t.Errorf("Despawn() = %d, want 3", n)
	}
	if w.Physics.DynamicCount() != 0 || w.Physics.GravityCount() != 1 {
		t.Error("despawn should only drop runtime bodies")
	}
}

func TestUpdateRespectsPauseAndTimeScale(t *testing.T) {
	w := New(config.Default())
	w.Scene.AddGameObject(planetObject(w, rl.Vector3{}, 5))
	ball := w.SpawnBall(rl.Vector3{Y: 20}, 0.5, rl.Red)

	w.Paused = true
	w.Update(1.0 / 60)
	if ball.Transform.Position.Y != 20 {
		t.Fatalf("paused world moved the ball to %v", ball.Transform.Position)
	}

	w.Paused = false
	w.TimeScale = 0
	w.Update(1.0 / 60)
	if ball.Transform.Position.Y != 20 {
		t.Fatalf("zero time scale moved the ball to %v", ball.Transform.Position)
	}

	w.TimeScale = 1
	w.Update(1.0 / 60)
	// One tick at 60 Hz is deltaMod 1, so the default pull of 1 applies
	if !near(ball.Transform.Position.Y, 19, 1e-3) {
		t.Errorf("ball at %v, want y=19", ball.Transform.Position)
	}

	w.TimeScale = 2
	w.Update(1.0 / 60)
	if ball.Transform.Position.Y >= 19 {
		t.Errorf("ball should keep falling, at %v", ball.Transform.Position)
	}
}

func TestVisibleCullsBehindCamera(t *testing.T) {
	w := New(config.Default())
	front := w.SpawnBall(rl.Vector3{}, 1, rl.Red)
	behind := w.SpawnBall(rl.Vector3{Z: 60}, 1, rl.Blue)

	camera := rl.Camera3D{
		Position:   rl.Vector3{Z: 20},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	visible := w.Visible(camera, 16.0/9.0)
	if len(visible) != 1 || visible[0] != front {
		t.Errorf("Visible() = %v, want only the ball in front", visible)
	}
	for _, g := range visible {
		if g == behind {
			t.Error("ball behind the camera should be culled")
		}
	}
}

func TestLoadShippedScene(t *testing.T) {
	w := New(config.Default())
	if err := w.LoadScene("../../assets/scenes/planets.json"); err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	if got := w.Physics.GravityCount(); got != 2 {
		t.Errorf("GravityCount() = %d, want 2", got)
	}
	if got := w.Physics.DynamicCount(); got != 3 {
		t.Errorf("DynamicCount() = %d, want 3", got)
	}
	if got := w.Physics.BodyCount(); got != 8 {
		t.Errorf("BodyCount() = %d, want 8", got)
	}
	if players := w.Scene.FindByTag("player"); len(players) != 1 || players[0].Name != "Player" {
		t.Errorf("FindByTag(player) = %v", players)
	}
	pad := w.Scene.FindByName("LandingPad")
	if pad == nil || !w.Physics.IndexContains(pad) {
		t.Error("landing pad should be indexed as a static collider")
	}
}
