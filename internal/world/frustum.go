package world

import (
	"orbit3d/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	frustumNear float32 = 0.1
	frustumFar  float32 = 1000.0
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum builds the frustum planes of camera for a viewport with the
// given aspect ratio, using the Gribb/Hartmann method.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, frustumNear, frustumFar)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, frustumNear, frustumFar)
	}

	// VP = P * V
	vp := rl.MatrixMultiply(view, proj)

	rows := [6][4]float32{
		{vp.M3 + vp.M0, vp.M7 + vp.M4, vp.M11 + vp.M8, vp.M15 + vp.M12},  // left
		{vp.M3 - vp.M0, vp.M7 - vp.M4, vp.M11 - vp.M8, vp.M15 - vp.M12},  // right
		{vp.M3 + vp.M1, vp.M7 + vp.M5, vp.M11 + vp.M9, vp.M15 + vp.M13},  // bottom
		{vp.M3 - vp.M1, vp.M7 - vp.M5, vp.M11 - vp.M9, vp.M15 - vp.M13},  // top
		{vp.M3 + vp.M2, vp.M7 + vp.M6, vp.M11 + vp.M10, vp.M15 + vp.M14}, // near
		{vp.M3 - vp.M2, vp.M7 - vp.M6, vp.M11 - vp.M10, vp.M15 - vp.M14}, // far
	}

	var f Frustum
	for i, r := range rows {
		f.planes[i] = normalizePlane(Plane{
			normal:   rl.Vector3{X: r[0], Y: r[1], Z: r[2]},
			distance: r[3],
		})
	}
	return f
}

// normalizePlane normalizes a plane equation
func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := range f.planes {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := range f.planes {
		dist := rl.Vector3DotProduct(f.planes[i].normal, point) + f.planes[i].distance
		if dist < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB is conservative: it only rejects boxes fully behind a plane.
func (f *Frustum) ContainsAABB(box components.AABB) bool {
	for i := range f.planes {
		n := f.planes[i].normal
		// Corner furthest along the plane normal
		p := box.Min
		if n.X >= 0 {
			p.X = box.Max.X
		}
		if n.Y >= 0 {
			p.Y = box.Max.Y
		}
		if n.Z >= 0 {
			p.Z = box.Max.Z
		}
		if rl.Vector3DotProduct(n, p)+f.planes[i].distance < 0 {
			return false
		}
	}
	return true
}
