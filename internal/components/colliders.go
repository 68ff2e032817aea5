package components

import (
	"orbit3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	g := s.GetGameObject()
	offset := rl.Vector3RotateByQuaternion(rl.Vector3Multiply(s.Offset, g.WorldScale()), g.WorldRotation())
	return rl.Vector3Add(g.WorldPosition(), offset)
}

// CapsuleCollider is a segment along the local Y axis swept by Radius.
// HalfHeight is the half length of the segment, excluding the caps.
type CapsuleCollider struct {
	engine.BaseComponent
	Radius     float32
	HalfHeight float32
}

func NewCapsuleCollider(radius, halfHeight float32) *CapsuleCollider {
	return &CapsuleCollider{Radius: radius, HalfHeight: halfHeight}
}

// Endpoints returns the world-space segment the capsule is swept along.
func (c *CapsuleCollider) Endpoints() (a, b rl.Vector3) {
	g := c.GetGameObject()
	center := g.WorldPosition()
	axis := rl.Vector3RotateByQuaternion(rl.Vector3{Y: c.HalfHeight * abs(g.WorldScale().Y)}, g.WorldRotation())
	return rl.Vector3Subtract(center, axis), rl.Vector3Add(center, axis)
}

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetWorldSize returns the collider size scaled by the object's world scale.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return rl.Vector3{X: abs(b.Size.X * s.X), Y: abs(b.Size.Y * s.Y), Z: abs(b.Size.Z * s.Z)}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	offset := rl.Vector3RotateByQuaternion(rl.Vector3Multiply(b.Offset, g.WorldScale()), g.WorldRotation())
	return rl.Vector3Add(g.WorldPosition(), offset)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
