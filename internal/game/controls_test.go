package game

import (
	"math/rand"
	"testing"

	"orbit3d/internal/engine"
	"orbit3d/internal/physics"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func playerObject() (*engine.GameObject, *physics.RigidBody) {
	g := engine.NewGameObject("player")
	rb := physics.NewDynamicBody(physics.CapsuleShape(0.5, 0.5))
	g.AddComponent(rb)
	return g, rb
}

func TestInputMovement(t *testing.T) {
	tests := []struct {
		name string
		in   playerInput
		want rl.Vector3
	}{
		{"idle", playerInput{}, rl.Vector3{}},
		{"forward", playerInput{forward: true}, rl.Vector3{Z: 2}},
		{"opposing keys cancel", playerInput{forward: true, back: true}, rl.Vector3{}},
		{"strafe left", playerInput{left: true}, rl.Vector3{X: 2}},
		{"diagonal is normalized", playerInput{forward: true, right: true}, rl.Vector3{X: -math32.Sqrt2, Z: math32.Sqrt2}},
	}
	for _, tt := range tests {
		got := tt.in.movement(2)
		if !near(got.X, tt.want.X, 1e-5) || !near(got.Y, tt.want.Y, 1e-5) || !near(got.Z, tt.want.Z, 1e-5) {
			t.Errorf("%s: movement = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestApplyInputTurnsAboutUp(t *testing.T) {
	g, rb := playerObject()
	applyInput(rb, playerInput{turnLeft: true}, 30)

	forward := rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, g.Transform.Rotation)
	// 3 degrees per tick over 30 ticks
	if !near(forward.X, 1, 1e-4) || !near(forward.Z, 0, 1e-4) {
		t.Errorf("forward = %v, want +X after a 90 degree left turn", forward)
	}
	up := rl.Vector3RotateByQuaternion(rb.Axes.Up, g.Transform.Rotation)
	if !near(up.Y, 1, 1e-5) {
		t.Errorf("turning must keep up, got %v", up)
	}
}

func TestApplyInputJumpNeedsGround(t *testing.T) {
	_, rb := playerObject()

	applyInput(rb, playerInput{jump: true}, 1)
	if rb.VelocityGravity.Force.Y != 0 {
		t.Error("airborne bodies cannot jump")
	}

	rb.VelocityGravity.Collision = &physics.RaycastHit{}
	applyInput(rb, playerInput{jump: true, forward: true}, 1)
	if rb.VelocityGravity.Force.Y != jumpSpeed {
		t.Errorf("gravity force = %v, want jump %v", rb.VelocityGravity.Force, jumpSpeed)
	}
	if !near(rb.VelocityMovement.Force.Z, moveSpeed, 1e-6) {
		t.Errorf("movement force = %v", rb.VelocityMovement.Force)
	}

	applyInput(rb, playerInput{}, 1)
	if rb.VelocityMovement.Force != (rl.Vector3{}) {
		t.Error("releasing keys should clear the movement force")
	}
}

func TestSpawnPointHeight(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	center := rl.Vector3{X: 5, Y: -3, Z: 2}
	for i := 0; i < 100; i++ {
		p := spawnPoint(rng, center, 10, 4)
		if d := rl.Vector3Distance(p, center); !near(d, 14, 1e-3) {
			t.Fatalf("spawn %d is %v from the center, want 14", i, d)
		}
	}
}
