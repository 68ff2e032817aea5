package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Update advances every dynamic body by one tick. deltaTime is the frame
// time in seconds and drives the gravity and safety net timers; deltaMod
// scales the gravity pull to normalize for frame rate.
func (w *World) Update(deltaTime, deltaMod float32) {
	if w.dynamic.len() == 0 {
		return
	}
	candidates := NewGravityCandidates(w.GravitySources())

	// Listeners may add or remove bodies mid-tick
	for _, id := range w.dynamic.snapshot() {
		rb := w.bodies[id]
		if rb == nil || !w.dynamic.contains(id) || rb.GetGameObject() == nil {
			continue
		}
		w.updateBody(rb, candidates, deltaTime, deltaMod)
	}
}

func (w *World) updateBody(rb *RigidBody, candidates *GravityCandidates, deltaTime, deltaMod float32) {
	g := rb.GetGameObject()

	origin, magnitude := w.gravityField(rb)
	magnitude = rl.Vector3Scale(magnitude, deltaMod)

	RotateRelativeToSource(g, origin, rb.Axes, rb.LerpDelta)

	w.HandleVelocity(rb, rb.VelocityMovement)

	up := upFrom(g.WorldPosition(), origin, rl.Vector3RotateByQuaternion(rb.Axes.Up, g.WorldRotation()))
	rb.VelocityGravity.Force = rl.Vector3Add(rb.VelocityGravity.Force, magnitude)
	rb.VelocityGravity.SetRelativeUp(up)
	w.HandleVelocity(rb, rb.VelocityGravity)

	w.SelectGravityBody(rb, candidates, deltaTime)

	if w.Context.SafetyNet.Enabled {
		w.applySafetyNet(rb, rl.Vector3Distance(g.WorldPosition(), origin), deltaTime)
	}
	if len(g.Children) > 0 {
		w.refreshAttached(g)
	}
}

// gravityField resolves where rb falls toward and how hard. A body with a
// live gravity source falls toward it with its own override, else the
// source's pull, else the World default. Without a source the World's
// default field applies.
func (w *World) gravityField(rb *RigidBody) (origin, magnitude rl.Vector3) {
	src := w.bodies[rb.GravityBody]
	if rb.GravityBody == 0 || src == nil || src.GetGameObject() == nil {
		return w.Context.GravitySource.Vector3(), w.Context.GravityMagnitude.Vector3()
	}

	switch {
	case rb.GravityMagnitude != nil:
		magnitude = *rb.GravityMagnitude
	case src.GravityMagnitude != nil:
		magnitude = *src.GravityMagnitude
	default:
		magnitude = w.Context.GravityMagnitude.Vector3()
	}
	return src.GetGameObject().WorldPosition(), magnitude
}
