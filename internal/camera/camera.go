// Package camera provides an orbit camera that follows a body around a
// planet, keeping the body's gravity up as the view's up.
package camera

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type OrbitCamera struct {
	Target   rl.Vector3
	Up       rl.Vector3
	Yaw      float32 // degrees around Up
	Pitch    float32 // degrees above the tangent plane
	Distance float32

	MinDistance float32
	MaxDistance float32
	LookSpeed   float32
	ZoomSpeed   float32
	// FollowRate is the fraction of the gap to the followed target closed
	// per Follow call.
	FollowRate float32
}

func New(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Up:          rl.Vector3{Y: 1},
		Yaw:         45,
		Pitch:       30,
		Distance:    distance,
		MinDistance: 2,
		MaxDistance: 500,
		LookSpeed:   0.3,
		ZoomSpeed:   0.1,
		FollowRate:  0.15,
	}
}

// Update applies mouse input: right drag orbits, the wheel zooms.
func (c *OrbitCamera) Update() {
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		d := rl.GetMouseDelta()
		c.Orbit(-d.X*c.LookSpeed, d.Y*c.LookSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Zoom(wheel)
	}
}

func (c *OrbitCamera) Orbit(yaw, pitch float32) {
	c.Yaw = math32.Mod(c.Yaw+yaw, 360)
	c.Pitch = clamp(c.Pitch+pitch, -89, 89)
}

// Zoom scales the distance by ZoomSpeed per step; positive steps move in.
func (c *OrbitCamera) Zoom(steps float32) {
	c.Distance = clamp(c.Distance*(1-steps*c.ZoomSpeed), c.MinDistance, c.MaxDistance)
}

// Follow eases toward target and up.
func (c *OrbitCamera) Follow(target, up rl.Vector3) {
	c.Target = rl.Vector3Lerp(c.Target, target, c.FollowRate)
	if rl.Vector3LengthSqr(up) > 0 {
		c.Up = rl.Vector3Normalize(rl.Vector3Lerp(c.Up, rl.Vector3Normalize(up), c.FollowRate))
	}
}

// frame rotates +Y onto Up.
func (c *OrbitCamera) frame() rl.Quaternion {
	up := rl.Vector3Normalize(c.Up)
	if rl.Vector3DotProduct(up, rl.Vector3{Y: 1}) < -0.9999 {
		return rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, math32.Pi)
	}
	return rl.QuaternionFromVector3ToVector3(rl.Vector3{Y: 1}, up)
}

// Position returns the eye point.
func (c *OrbitCamera) Position() rl.Vector3 {
	yaw := c.Yaw * rl.Deg2rad
	pitch := c.Pitch * rl.Deg2rad
	offset := rl.Vector3{
		X: math32.Cos(pitch) * math32.Sin(yaw),
		Y: math32.Sin(pitch),
		Z: math32.Cos(pitch) * math32.Cos(yaw),
	}
	offset = rl.Vector3RotateByQuaternion(rl.Vector3Scale(offset, c.Distance), c.frame())
	return rl.Vector3Add(c.Target, offset)
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         c.Up,
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
