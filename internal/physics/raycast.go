package physics

import (
	"orbit3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Object   *engine.GameObject
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// RaycastShape intersects a single shape without going through the index.
// direction is normalized here. A miss, or a hit beyond maxDistance, returns
// false.
func RaycastShape(g *engine.GameObject, shape Shape, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	if rl.Vector3LengthSqr(direction) == 0 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)
	t, normal, ok := shape.Raycast(g, origin, direction, maxDistance)
	if !ok || t > maxDistance {
		return RaycastHit{}, false
	}
	return RaycastHit{
		Object:   g,
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   normal,
		Distance: t,
	}, true
}

// raySphere returns the first non-negative root of |origin + t*dir - center| = radius.
// Origins inside the sphere report the exit.
func raySphere(origin, dir, center rl.Vector3, radius, maxDistance float32) (float32, bool) {
	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(dir, dir)
	b := 2.0 * rl.Vector3DotProduct(oc, dir)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return 0, false
	}
	sq := math32.Sqrt(discriminant)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

// rayEllipsoid intersects an ellipsoid with semi-axes along the rotated local
// axes. The ray is moved into the space where the ellipsoid is a unit sphere;
// distances are mapped back through the world-space hit point.
func rayEllipsoid(origin, dir, center, semiAxes rl.Vector3, rotation rl.Quaternion, maxDistance float32) (float32, rl.Vector3, bool) {
	if semiAxes.X == 0 || semiAxes.Y == 0 || semiAxes.Z == 0 {
		return 0, rl.Vector3{}, false
	}
	inv := rl.QuaternionInvert(rotation)
	lo := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(origin, center), inv)
	ld := rl.Vector3RotateByQuaternion(dir, inv)
	lo = rl.Vector3Divide(lo, semiAxes)
	ld = rl.Vector3Divide(ld, semiAxes)

	// Parameter t is shared between spaces since the map is linear
	t, ok := raySphere(lo, ld, rl.Vector3{}, 1, maxDistance)
	if !ok {
		return 0, rl.Vector3{}, false
	}

	p := rl.Vector3Add(lo, rl.Vector3Scale(ld, t))
	// Gradient of the implicit surface gives the normal
	n := rl.Vector3Divide(p, semiAxes)
	normal := rl.Vector3Normalize(rl.Vector3RotateByQuaternion(n, rotation))
	return t, normal, true
}

// rayCapsule intersects a capsule swept between a and b. The nearest of the
// cylinder body and the two end spheres wins.
func rayCapsule(origin, dir, a, b rl.Vector3, radius, maxDistance float32) (float32, rl.Vector3, bool) {
	best := maxDistance
	var normal rl.Vector3
	hit := false

	ba := rl.Vector3Subtract(b, a)
	oa := rl.Vector3Subtract(origin, a)
	baba := rl.Vector3DotProduct(ba, ba)
	bard := rl.Vector3DotProduct(ba, dir)
	baoa := rl.Vector3DotProduct(ba, oa)
	rdoa := rl.Vector3DotProduct(dir, oa)
	oaoa := rl.Vector3DotProduct(oa, oa)

	qa := baba - bard*bard
	if baba > 1e-12 && qa > 1e-6 {
		qb := baba*rdoa - baoa*bard
		qc := baba*oaoa - baoa*baoa - radius*radius*baba
		h := qb*qb - qa*qc
		if h >= 0 {
			sq := math32.Sqrt(h)
			for _, t := range [2]float32{(-qb - sq) / qa, (-qb + sq) / qa} {
				if t < 0 || t > best {
					continue
				}
				y := baoa + t*bard
				if y <= 0 || y >= baba {
					continue
				}
				p := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
				axisPoint := rl.Vector3Add(a, rl.Vector3Scale(ba, y/baba))
				best = t
				normal = rl.Vector3Normalize(rl.Vector3Subtract(p, axisPoint))
				hit = true
				break
			}
		}
	}

	for _, c := range [2]rl.Vector3{a, b} {
		if t, ok := raySphere(origin, dir, c, radius, best); ok && (!hit || t < best) {
			best = t
			normal = rl.Vector3Normalize(rl.Vector3Subtract(rl.Vector3Add(origin, rl.Vector3Scale(dir, t)), c))
			hit = true
		}
	}
	return best, normal, hit
}
