package game

import (
	"math/rand"

	"orbit3d/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	moveSpeed = 0.25
	jumpSpeed = 1.5
	// turnSpeed is in degrees per tick.
	turnSpeed = 3
)

// playerInput is one frame of held keys.
type playerInput struct {
	forward, back, left, right bool
	turnLeft, turnRight        bool
	jump                       bool
}

func readInput() playerInput {
	return playerInput{
		forward:   rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		back:      rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
		left:      rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		right:     rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
		turnLeft:  rl.IsKeyDown(rl.KeyQ),
		turnRight: rl.IsKeyDown(rl.KeyE),
		jump:      rl.IsKeyPressed(rl.KeySpace),
	}
}

// movement returns the body-local movement force. Forward is +Z and left
// is +X when up is +Y.
func (in playerInput) movement(speed float32) rl.Vector3 {
	var dir rl.Vector3
	if in.forward {
		dir.Z++
	}
	if in.back {
		dir.Z--
	}
	if in.left {
		dir.X++
	}
	if in.right {
		dir.X--
	}
	if rl.Vector3LengthSqr(dir) == 0 {
		return dir
	}
	return rl.Vector3Scale(rl.Vector3Normalize(dir), speed)
}

// turn returns the yaw delta in degrees.
func (in playerInput) turn() float32 {
	var d float32
	if in.turnLeft {
		d += turnSpeed
	}
	if in.turnRight {
		d -= turnSpeed
	}
	return d
}

// applyInput drives rb's movement channel and turns it about its up axis.
// Jumping pushes the gravity channel away from the source and only works
// while grounded.
func applyInput(rb *physics.RigidBody, in playerInput, frameScale float32) {
	g := rb.GetGameObject()
	rb.VelocityMovement.Force = in.movement(moveSpeed * frameScale)

	if yaw := in.turn() * frameScale; yaw != 0 {
		up := rl.Vector3RotateByQuaternion(rb.Axes.Up, g.Transform.Rotation)
		turn := rl.QuaternionFromAxisAngle(up, yaw*rl.Deg2rad)
		g.Transform.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(turn, g.Transform.Rotation))
	}

	if in.jump && rb.IsGrounded() {
		rb.VelocityGravity.Force.Y += jumpSpeed
	}
}

// spawnPoint picks a random point height units above a sphere of radius
// around center.
func spawnPoint(rng *rand.Rand, center rl.Vector3, radius, height float32) rl.Vector3 {
	// Uniform direction on the unit sphere
	z := rng.Float32()*2 - 1
	phi := rng.Float32() * 2 * math32.Pi
	r := math32.Sqrt(1 - z*z)
	dir := rl.Vector3{X: r * math32.Cos(phi), Y: r * math32.Sin(phi), Z: z}
	return rl.Vector3Add(center, rl.Vector3Scale(dir, radius+height))
}
