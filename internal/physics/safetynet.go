package physics

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// sunkFactor is the fraction of a body's extent toward its source below
// which it counts as having fallen through the source.
const sunkFactor = 0.5

// applySafetyNet rescues bodies that fell through or away from their gravity
// source. A body is flagged unsafe on one tick and restored to its last
// grounded pose on the next, so listeners of OnSafetyNetStart see the body
// where it went wrong.
func (w *World) applySafetyNet(rb *RigidBody, originDistance, deltaTime float32) {
	g := rb.GetGameObject()

	if !rb.Safe {
		g.SetWorldPosition(rb.Safetynet.Position)
		g.SetWorldRotation(rb.Safetynet.Rotation)
		rb.VelocityMovement.Reset()
		rb.VelocityGravity.Reset()
		rb.Safe = true
		rb.unsafeTime = 0
		rb.lastGravityDistance = 0
		log.Printf("Physics: safety net restored %s", g.Name)
		rb.OnSafetyNetEnd.Invoke()
		w.SafetyNetEnded.Invoke(rb)
		return
	}

	if rb.VelocityGravity.Collision != nil {
		rb.unsafeTime = 0
		rb.lastGravityDistance = originDistance
		rb.snapshotSafetynet()
		return
	}

	diverging := rb.lastGravityDistance > 0 && originDistance > rb.lastGravityDistance
	sunk := false
	if rb.GravityBody != 0 {
		if src := w.bodies[rb.GravityBody]; src != nil && src.GetGameObject() != nil {
			extent := src.ExtentInDirection(rl.Vector3Subtract(g.WorldPosition(), src.GetGameObject().WorldPosition()))
			sunk = originDistance < extent*sunkFactor
		}
	}
	rb.lastGravityDistance = originDistance

	if !diverging && !sunk {
		rb.unsafeTime = 0
		return
	}
	rb.unsafeTime += deltaTime
	if !rb.hasSafetynet || rb.unsafeTime <= w.Context.SafetyNetTimeout() {
		return
	}

	rb.Safe = false
	rb.unsafeTime = 0
	log.Printf("Physics: safety net caught %s (distance %.2f)", g.Name, originDistance)
	rb.OnSafetyNetStart.Invoke()
	w.SafetyNetStarted.Invoke(rb)
}
