package components

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min, Max rl.Vector3
}

// EmptyAABB returns an inverted box that any Extend call will replace.
func EmptyAABB() AABB {
	return AABB{
		Min: rl.Vector3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: rl.Vector3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Extend(p rl.Vector3) AABB {
	return AABB{Min: rl.Vector3Min(a.Min, p), Max: rl.Vector3Max(a.Max, p)}
}

func (a AABB) Union(b AABB) AABB {
	return AABB{Min: rl.Vector3Min(a.Min, b.Min), Max: rl.Vector3Max(a.Max, b.Max)}
}

// Pad grows the box by d on every side.
func (a AABB) Pad(d float32) AABB {
	pad := rl.Vector3{X: d, Y: d, Z: d}
	return AABB{Min: rl.Vector3Subtract(a.Min, pad), Max: rl.Vector3Add(a.Max, pad)}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) HalfSize() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Subtract(a.Max, a.Min), 0.5)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether b lies entirely inside a.
func (a AABB) Contains(b AABB) bool {
	return a.Min.X <= b.Min.X && a.Max.X >= b.Max.X &&
		a.Min.Y <= b.Min.Y && a.Max.Y >= b.Max.Y &&
		a.Min.Z <= b.Min.Z && a.Max.Z >= b.Max.Z
}

// IntersectRay runs the slab test and returns the parametric entry and exit
// distances along dir. dir does not need to be normalized; distances are in
// units of dir's length.
func (a AABB) IntersectRay(origin, dir rl.Vector3) (tmin, tmax float32, ok bool) {
	tmin = -math32.MaxFloat32
	tmax = math32.MaxFloat32

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{a.Min.X, a.Min.Y, a.Min.Z}
	hi := [3]float32{a.Max.X, a.Max.Y, a.Max.Z}

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, 0, false
		}
	}
	if tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}
