package physics

import (
	"orbit3d/internal/config"
	"orbit3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Axes is a body's local orientation basis.
type Axes struct {
	Up      rl.Vector3
	Forward rl.Vector3
}

// Pose is a saved world position and rotation.
type Pose struct {
	Position rl.Vector3
	Rotation rl.Quaternion
}

// RigidBody marks a GameObject as part of the physics World. Static bodies
// (Dynamic false) only live in the octree; dynamic bodies are integrated
// every tick. Any body may also be a gravity source.
type RigidBody struct {
	engine.BaseComponent

	Shape         Shape
	Dynamic       bool
	GravitySource bool

	VelocityMovement *Velocity
	VelocityGravity  *Velocity

	Axes      Axes
	LerpDelta float32

	// GravityBody is the source this body currently falls toward.
	GravityBody BodyID
	// GravityMagnitude overrides the pull this body feels when set. On a
	// gravity source it is also the pull the source exerts on bodies that
	// carry no override of their own.
	GravityMagnitude *rl.Vector3

	Safetynet        Pose
	Safe             bool
	OnSafetyNetStart engine.Event
	OnSafetyNetEnd   engine.Event

	id                  BodyID
	lastGravityDistance float32
	unsafeTime          float32
	hasSafetynet        bool
}

func NewRigidBody() *RigidBody {
	return NewRigidBodyWithDefaults(config.Default().Bodies)
}

// NewRigidBodyWithDefaults seeds damping and lerp rates from d.
func NewRigidBodyWithDefaults(d config.BodyDefaults) *RigidBody {
	rb := &RigidBody{
		VelocityMovement: NewVelocity(d.MovementDamping),
		VelocityGravity:  NewVelocity(d.GravityDamping),
		Axes: Axes{
			Up:      rl.Vector3{Y: 1},
			Forward: rl.Vector3{Z: 1},
		},
		LerpDelta: d.LerpDelta,
		Safe:      true,
		Safetynet: Pose{Rotation: rl.QuaternionIdentity()},
	}
	rb.VelocityMovement.RelativeToBody = true
	return rb
}

// NewStaticBody returns a body that only collides.
func NewStaticBody(shape Shape) *RigidBody {
	rb := NewRigidBody()
	rb.Shape = shape
	return rb
}

// NewDynamicBody returns a body that is integrated every tick.
func NewDynamicBody(shape Shape) *RigidBody {
	rb := NewStaticBody(shape)
	rb.Dynamic = true
	return rb
}

// NewGravitySource returns a static body other bodies fall toward.
func NewGravitySource(shape Shape) *RigidBody {
	rb := NewStaticBody(shape)
	rb.GravitySource = true
	return rb
}

// ID returns the body's handle, or 0 before it was first added to a World.
func (r *RigidBody) ID() BodyID {
	return r.id
}

// ExtentInDirection returns the distance from the body's center to its
// collider surface along dir.
func (r *RigidBody) ExtentInDirection(dir rl.Vector3) float32 {
	g := r.GetGameObject()
	if g == nil {
		return 0
	}
	return r.Shape.ExtentInDirection(g, dir)
}

// IsMoving reports whether the movement channel advanced unobstructed.
func (r *RigidBody) IsMoving() bool {
	return r.VelocityMovement.Moving
}

// IsGrounded reports whether gravity was clamped by a collider last tick.
func (r *RigidBody) IsGrounded() bool {
	return r.VelocityGravity.Collision != nil
}

func (r *RigidBody) zeroForces() {
	r.VelocityMovement.Force = rl.Vector3{}
	r.VelocityGravity.Force = rl.Vector3{}
}

func (r *RigidBody) snapshotSafetynet() {
	g := r.GetGameObject()
	r.Safetynet = Pose{Position: g.WorldPosition(), Rotation: g.WorldRotation()}
	r.hasSafetynet = true
}
