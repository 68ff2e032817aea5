package physics

import (
	"orbit3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// RotateRelativeToSource turns g a step of lerp toward the orientation whose
// axes.Up points away from origin. When the body is upside down relative to
// the source, it flips around its own forward axis.
func RotateRelativeToSource(g *engine.GameObject, origin rl.Vector3, axes Axes, lerp float32) {
	up := rl.Vector3Subtract(g.WorldPosition(), origin)
	if rl.Vector3LengthSqr(up) < 1e-12 {
		return
	}
	up = rl.Vector3Normalize(up)

	rotation := g.WorldRotation()
	currentUp := rl.Vector3RotateByQuaternion(axes.Up, rotation)
	forward := rl.Vector3RotateByQuaternion(axes.Forward, rotation)

	delta := rotationBetween(currentUp, up, forward)
	target := rl.QuaternionNormalize(rl.QuaternionMultiply(delta, rotation))
	g.SetWorldRotation(rl.QuaternionNormalize(rl.QuaternionSlerp(rotation, target, clamp(lerp, 0, 1))))
}

// upFrom returns the unit direction from origin to p, or fallback when the
// two coincide.
func upFrom(p, origin, fallback rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, origin)
	if rl.Vector3LengthSqr(d) < 1e-12 {
		return fallback
	}
	return rl.Vector3Normalize(d)
}
