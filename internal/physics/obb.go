package physics

import (
	"orbit3d/internal/components"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Rotation rl.Quaternion // Local to world rotation
}

// NewOBB creates an OBB from center, full size, and rotation
func NewOBB(center, size rl.Vector3, rotation rl.Quaternion) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: math32.Abs(size.X) / 2, Y: math32.Abs(size.Y) / 2, Z: math32.Abs(size.Z) / 2},
		Rotation: rotation,
	}
}

// Axes returns the box's local X, Y, Z axes in world space.
func (o OBB) Axes() [3]rl.Vector3 {
	return [3]rl.Vector3{
		rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, o.Rotation),
		rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, o.Rotation),
		rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, o.Rotation),
	}
}

// Bounds returns the world AABB enclosing the box.
func (o OBB) Bounds() components.AABB {
	axes := o.Axes()
	half := rl.Vector3{
		X: math32.Abs(axes[0].X)*o.HalfSize.X + math32.Abs(axes[1].X)*o.HalfSize.Y + math32.Abs(axes[2].X)*o.HalfSize.Z,
		Y: math32.Abs(axes[0].Y)*o.HalfSize.X + math32.Abs(axes[1].Y)*o.HalfSize.Y + math32.Abs(axes[2].Y)*o.HalfSize.Z,
		Z: math32.Abs(axes[0].Z)*o.HalfSize.X + math32.Abs(axes[1].Z)*o.HalfSize.Y + math32.Abs(axes[2].Z)*o.HalfSize.Z,
	}
	return components.NewAABBFromCenter(o.Center, half)
}

// toLocal moves a world point into box space.
func (o OBB) toLocal(p rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3Subtract(p, o.Center), rl.QuaternionInvert(o.Rotation))
}

// IntersectRay returns the distance along the normalized dir to the box
// surface and the face normal there. Origins inside the box report the exit.
func (o OBB) IntersectRay(origin, dir rl.Vector3, maxDistance float32) (float32, rl.Vector3, bool) {
	inv := rl.QuaternionInvert(o.Rotation)
	localOrigin := o.toLocal(origin)
	localDir := rl.Vector3RotateByQuaternion(dir, inv)

	box := components.AABB{Min: rl.Vector3Negate(o.HalfSize), Max: o.HalfSize}
	tmin, tmax, ok := box.IntersectRay(localOrigin, localDir)
	if !ok {
		return 0, rl.Vector3{}, false
	}
	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return 0, rl.Vector3{}, false
	}

	// Calculate normal based on which face was hit
	point := rl.Vector3Add(localOrigin, rl.Vector3Scale(localDir, t))
	var normal rl.Vector3
	best := math32.MaxFloat32
	faces := [6]struct {
		dist   float32
		normal rl.Vector3
	}{
		{math32.Abs(point.X + o.HalfSize.X), rl.Vector3{X: -1}},
		{math32.Abs(point.X - o.HalfSize.X), rl.Vector3{X: 1}},
		{math32.Abs(point.Y + o.HalfSize.Y), rl.Vector3{Y: -1}},
		{math32.Abs(point.Y - o.HalfSize.Y), rl.Vector3{Y: 1}},
		{math32.Abs(point.Z + o.HalfSize.Z), rl.Vector3{Z: -1}},
		{math32.Abs(point.Z - o.HalfSize.Z), rl.Vector3{Z: 1}},
	}
	for _, f := range faces {
		if f.dist < best {
			best = f.dist
			normal = f.normal
		}
	}

	return t, rl.Vector3RotateByQuaternion(normal, o.Rotation), true
}

// ExtentInDirection returns the distance from the center to the box surface
// along dir.
func (o OBB) ExtentInDirection(dir rl.Vector3) float32 {
	d := rl.Vector3RotateByQuaternion(rl.Vector3Normalize(dir), rl.QuaternionInvert(o.Rotation))
	extent := math32.MaxFloat32
	for _, axis := range [3][2]float32{{d.X, o.HalfSize.X}, {d.Y, o.HalfSize.Y}, {d.Z, o.HalfSize.Z}} {
		c := math32.Abs(axis[0])
		if c < 1e-6 {
			continue
		}
		if e := axis[1] / c; e < extent {
			extent = e
		}
	}
	if extent == math32.MaxFloat32 {
		return 0
	}
	return extent
}
