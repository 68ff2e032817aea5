package physics

import (
	"log"

	"orbit3d/internal/config"
	"orbit3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// World owns every registered RigidBody. Static bodies live in the octree,
// dynamic bodies are integrated by Update, and gravity sources are tracked
// separately so dynamic bodies can pick one to fall toward.
//
// A World is not safe for concurrent use; Add, Remove and Update must be
// called from the game loop.
type World struct {
	Context config.SimulationContext

	SafetyNetStarted engine.EventWithArg[*RigidBody]
	SafetyNetEnded   engine.EventWithArg[*RigidBody]

	index   *Octree
	bodies  map[BodyID]*RigidBody
	gravity bodySet
	dynamic bodySet
	nextID  BodyID
}

func NewWorld(ctx config.SimulationContext) *World {
	return &World{
		Context: ctx,
		index:   NewOctree(ctx.Octree),
		bodies:  make(map[BodyID]*RigidBody),
		gravity: newBodySet(),
		dynamic: newBodySet(),
	}
}

// NewRigidBody returns a body seeded with the World's body defaults.
func (w *World) NewRigidBody(shape Shape) *RigidBody {
	rb := NewRigidBodyWithDefaults(w.Context.Bodies)
	rb.Shape = shape
	return rb
}

// Add registers obj and every descendant carrying a RigidBody. Objects
// without one are skipped. Adding twice has no further effect.
func (w *World) Add(obj *engine.GameObject) {
	w.modifyBodies(obj, true)
}

// Remove unregisters obj and every descendant carrying a RigidBody.
func (w *World) Remove(obj *engine.GameObject) {
	w.modifyBodies(obj, false)
}

func (w *World) modifyBodies(root *engine.GameObject, adding bool) {
	if root == nil {
		panic("physics: nil GameObject passed to World")
	}
	if w.index == nil {
		panic("physics: World has no spatial index, use NewWorld")
	}

	for obj := range root.Traverse() {
		rb := engine.GetComponent[*RigidBody](obj)
		if rb == nil {
			continue
		}
		rb.zeroForces()
		if adding {
			w.addBody(obj, rb)
		} else {
			w.removeBody(obj, rb)
		}
	}
}

func (w *World) addBody(obj *engine.GameObject, rb *RigidBody) {
	if rb.id == 0 {
		w.nextID++
		rb.id = w.nextID
	}
	if _, ok := w.bodies[rb.id]; !ok {
		w.bodies[rb.id] = rb
	}
	if rb.Shape.Kind == ShapeNone {
		rb.Shape = ShapeFromObject(obj)
	}
	if rb.Shape.Kind == ShapeMesh && rb.Shape.Mesh != nil && !rb.Shape.Mesh.IsBuilt() {
		rb.Shape.Mesh.Rebuild()
	}

	if rb.GravitySource && w.gravity.add(rb.id) {
		for _, idle := range engine.GetComponents[engine.IdleAnimator](obj) {
			idle.PlayIdle()
		}
	}

	// Re-adding after a role flip moves the body to its new home
	if rb.Dynamic {
		w.index.Remove(obj)
		if w.dynamic.add(rb.id) {
			rb.Safe = true
			rb.unsafeTime = 0
			rb.lastGravityDistance = 0
			rb.snapshotSafetynet()
		}
		return
	}
	w.dynamic.remove(rb.id)
	w.index.Insert(obj, rb.Shape.Kind == ShapeMesh)
}

func (w *World) removeBody(obj *engine.GameObject, rb *RigidBody) {
	if rb.id == 0 {
		return
	}
	delete(w.bodies, rb.id)
	w.gravity.remove(rb.id)
	// Roles may have been flipped since Add, so clear both homes
	w.dynamic.remove(rb.id)
	w.index.Remove(obj)
}

// Refresh re-indexes a static body after it was moved or its collider
// changed. Dynamic bodies are read live and need no refresh.
func (w *World) Refresh(obj *engine.GameObject) {
	rb := engine.GetComponent[*RigidBody](obj)
	if rb == nil || rb.Dynamic || !w.Contains(rb) {
		return
	}
	w.index.Refresh(obj, rb.Shape.Kind == ShapeMesh)
}

// refreshAttached re-indexes the static colliders parented under a dynamic
// body so they follow it.
func (w *World) refreshAttached(g *engine.GameObject) {
	for obj := range g.Traverse() {
		if obj == g {
			continue
		}
		if rb := engine.GetComponent[*RigidBody](obj); rb != nil && !rb.Dynamic && w.index.Contains(obj) {
			w.index.Refresh(obj, rb.Shape.Kind == ShapeMesh)
		}
	}
}

// Raycast queries the static colliders.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore *engine.GameObject) (RaycastHit, bool) {
	return w.index.Raycast(origin, direction, maxDistance, ignore)
}

func (w *World) Body(id BodyID) *RigidBody {
	return w.bodies[id]
}

func (w *World) Contains(rb *RigidBody) bool {
	return rb != nil && rb.id != 0 && w.bodies[rb.id] == rb
}

func (w *World) IsDynamic(rb *RigidBody) bool {
	return rb != nil && w.dynamic.contains(rb.id)
}

func (w *World) IsGravitySource(rb *RigidBody) bool {
	return rb != nil && w.gravity.contains(rb.id)
}

// IndexContains reports whether obj has colliders in the octree.
func (w *World) IndexContains(obj *engine.GameObject) bool {
	return w.index.Contains(obj)
}

func (w *World) Index() *Octree {
	return w.index
}

func (w *World) BodyCount() int {
	return len(w.bodies)
}

func (w *World) DynamicCount() int {
	return w.dynamic.len()
}

func (w *World) GravityCount() int {
	return w.gravity.len()
}

// DynamicBodies returns the dynamic bodies in registration order, with
// removals filling holes from the end.
func (w *World) DynamicBodies() []*RigidBody {
	out := make([]*RigidBody, 0, w.dynamic.len())
	for _, id := range w.dynamic.ids {
		out = append(out, w.bodies[id])
	}
	return out
}

// GravitySources returns the registered gravity sources.
func (w *World) GravitySources() []*RigidBody {
	out := make([]*RigidBody, 0, w.gravity.len())
	for _, id := range w.gravity.ids {
		out = append(out, w.bodies[id])
	}
	return out
}

func (w *World) logGravitySwitch(rb *RigidBody, from, to BodyID) {
	name := func(id BodyID) string {
		if b := w.bodies[id]; b != nil && b.GetGameObject() != nil {
			return b.GetGameObject().Name
		}
		return "world"
	}
	log.Printf("Physics: %s gravity %s -> %s", rb.GetGameObject().Name, name(from), name(to))
}
