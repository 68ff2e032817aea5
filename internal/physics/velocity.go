package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// snapThreshold is the force magnitude below which a channel comes to rest.
const snapThreshold = 0.01

// Velocity is one independent velocity channel of a body. Force is expressed
// in the channel's reference frame: RelativeRotation when Relative is set,
// otherwise the body's own rotation when RelativeToBody is set, otherwise
// world space.
type Velocity struct {
	Force        rl.Vector3
	ForceRotated rl.Vector3 // displacement applied on the last tick
	Damping      float32

	RelativeRotation rl.Quaternion
	Relative         bool
	RelativeToBody   bool

	// Offset shifts the ray origin, in the body's local frame.
	Offset rl.Vector3

	// Collision is the obstacle that clamped the last tick. Intersection is
	// the obstacle the ray reached without clamping.
	Collision    *RaycastHit
	Intersection *RaycastHit
	Moving       bool

	TimeWithoutIntersection    float32
	UpdatesWithoutIntersection int
}

func NewVelocity(damping float32) *Velocity {
	return &Velocity{
		Damping:          damping,
		RelativeRotation: rl.QuaternionIdentity(),
	}
}

// Reset stops the channel and forgets its last ray results.
func (v *Velocity) Reset() {
	v.Force = rl.Vector3{}
	v.ForceRotated = rl.Vector3{}
	v.Collision = nil
	v.Intersection = nil
	v.Moving = false
	v.TimeWithoutIntersection = 0
	v.UpdatesWithoutIntersection = 0
}

func (v *Velocity) IsZero() bool {
	return v.Force == rl.Vector3{}
}

// SetRelativeRotation makes Force relative to q.
func (v *Velocity) SetRelativeRotation(q rl.Quaternion) {
	v.RelativeRotation = q
	v.Relative = true
}

// SetRelativeUp makes Force relative to the rotation carrying +Y onto up.
func (v *Velocity) SetRelativeUp(up rl.Vector3) {
	v.SetRelativeRotation(rotationBetween(worldUp, up, rl.Vector3{X: 1}))
}

var worldUp = rl.Vector3{Y: 1}

// rotationBetween returns the shortest rotation from a to b. When the two are
// opposite, it turns half way around fallback instead.
func rotationBetween(a, b, fallback rl.Vector3) rl.Quaternion {
	a = rl.Vector3Normalize(a)
	b = rl.Vector3Normalize(b)
	if rl.Vector3DotProduct(a, b) < -0.9999 {
		return rl.QuaternionFromAxisAngle(fallback, math.Pi)
	}
	return rl.QuaternionFromVector3ToVector3(a, b)
}
