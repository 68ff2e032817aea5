package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// scaleSpeedExponent makes larger bodies move faster without scaling speed
// linearly: doubling an axis scales its displacement by 2^ln(1.5).
var scaleSpeedExponent = math32.Log(1.5)

// HandleVelocity advances rb by one tick of channel v. The force is rotated
// into world space, scaled by the body's size, and clamped so the body stops
// its extent short of the nearest static collider along the way. The force is
// then damped and snapped to zero once it gets small.
//
// It returns the collider the ray reached, if any.
func (w *World) HandleVelocity(rb *RigidBody, v *Velocity) (RaycastHit, bool) {
	g := rb.GetGameObject()
	if !rb.Dynamic || g == nil || v.IsZero() {
		v.Moving = false
		return RaycastHit{}, false
	}
	v.Moving = true

	rotation := g.WorldRotation()
	forceRotated := v.Force
	if v.Relative {
		forceRotated = rl.Vector3RotateByQuaternion(forceRotated, v.RelativeRotation)
	} else if v.RelativeToBody {
		forceRotated = rl.Vector3RotateByQuaternion(forceRotated, rotation)
	}
	forceRotated = rl.Vector3Multiply(forceRotated, speedScale(g.WorldScale()))

	travel := rl.Vector3Length(forceRotated)
	var hit RaycastHit
	found := false
	if travel > 1e-9 {
		radius := rb.ExtentInDirection(forceRotated)

		origin := g.WorldPosition()
		if v.Offset != (rl.Vector3{}) {
			origin = rl.Vector3Add(origin, rl.Vector3RotateByQuaternion(v.Offset, rotation))
		}

		hit, found = w.index.Raycast(origin, forceRotated, travel+radius, g)
		if found {
			h := hit
			v.Intersection = &h
			if hit.Distance-travel <= radius {
				forceRotated = rl.Vector3Scale(forceRotated, (hit.Distance-radius)/travel)
				v.Moving = false
				v.Collision = &h
			} else {
				v.Collision = nil
			}
		} else {
			v.Intersection = nil
			v.Collision = nil
		}
	}

	v.ForceRotated = forceRotated
	g.SetWorldPosition(rl.Vector3Add(g.WorldPosition(), forceRotated))

	v.Force = rl.Vector3Multiply(v.Force, rl.Vector3{X: v.Damping, Y: v.Damping, Z: v.Damping})
	if rl.Vector3Length(v.Force) < snapThreshold {
		v.Force = rl.Vector3{}
	}
	return hit, found
}

// speedScale raises each axis of the absolute scale to scaleSpeedExponent.
func speedScale(scale rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: math32.Pow(math32.Abs(scale.X), scaleSpeedExponent),
		Y: math32.Pow(math32.Abs(scale.Y), scaleSpeedExponent),
		Z: math32.Pow(math32.Abs(scale.Z), scaleSpeedExponent),
	}
}
