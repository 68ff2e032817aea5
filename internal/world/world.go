// Package world ties a Scene to a physics World and loads both from scene
// files. Objects entering or leaving the scene are registered with physics
// through the scene's attach and detach events.
package world

import (
	"log"

	"orbit3d/internal/config"
	"orbit3d/internal/engine"
	"orbit3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RuntimeTag marks objects spawned while running. They are not saved.
const RuntimeTag = "runtime"

// frameRate is the tick rate deltaMod is normalized to.
const frameRate = 60

type World struct {
	Scene   *engine.Scene
	Physics *physics.World

	TimeScale float32
	Paused    bool

	spawned int
}

func New(ctx config.SimulationContext) *World {
	w := &World{
		Scene:     engine.NewScene("Main"),
		Physics:   physics.NewWorld(ctx),
		TimeScale: 1,
	}
	Bind(w.Scene, w.Physics)
	return w
}

// Bind keeps pw in sync with the bodies in scene.
func Bind(scene *engine.Scene, pw *physics.World) {
	scene.OnAttach.AddListener(pw.Add)
	scene.OnDetach.AddListener(pw.Remove)
}

// Update advances the scene and physics by deltaTime seconds of wall time,
// scaled by TimeScale.
func (w *World) Update(deltaTime float32) {
	if w.Paused || w.TimeScale <= 0 {
		return
	}
	step := deltaTime * w.TimeScale
	w.Scene.Update(step)
	w.Physics.Update(step, step*frameRate)
}

// SpawnBall drops a dynamic sphere at pos.
func (w *World) SpawnBall(pos rl.Vector3, radius float32, color rl.Color) *engine.GameObject {
	w.spawned++
	g := engine.NewGameObject("ball")
	g.Tags = []string{RuntimeTag}
	g.Transform.Position = pos
	g.AddComponent(NewAppearance(color))
	g.AddComponent(w.newDynamicBody(physics.SphereShape(radius)))
	w.Scene.AddGameObject(g)
	log.Printf("World: spawned ball #%d at (%.1f, %.1f, %.1f)", w.spawned, pos.X, pos.Y, pos.Z)
	return g
}

func (w *World) newDynamicBody(shape physics.Shape) *physics.RigidBody {
	rb := w.Physics.NewRigidBody(shape)
	rb.Dynamic = true
	return rb
}

// Despawn removes every runtime object.
func (w *World) Despawn() int {
	objs := w.Scene.FindByTag(RuntimeTag)
	for _, g := range objs {
		w.Scene.RemoveGameObject(g)
	}
	return len(objs)
}

// Bodies returns every object carrying a RigidBody.
func (w *World) Bodies() []*engine.GameObject {
	var out []*engine.GameObject
	for _, root := range w.Scene.GameObjects {
		for g := range root.Traverse() {
			if engine.GetComponent[*physics.RigidBody](g) != nil {
				out = append(out, g)
			}
		}
	}
	return out
}

// Visible returns the bodies whose bounds intersect the camera frustum.
func (w *World) Visible(camera rl.Camera3D, aspect float32) []*engine.GameObject {
	f := ExtractFrustum(camera, aspect)
	var out []*engine.GameObject
	for _, g := range w.Bodies() {
		rb := engine.GetComponent[*physics.RigidBody](g)
		if f.ContainsAABB(rb.Shape.Bounds(g)) {
			out = append(out, g)
		}
	}
	return out
}
