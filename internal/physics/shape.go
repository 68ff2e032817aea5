package physics

import (
	"orbit3d/internal/components"
	"orbit3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapeSphere
	ShapeCapsule
	ShapeBox
	ShapeMesh
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeCapsule:
		return "capsule"
	case ShapeBox:
		return "box"
	case ShapeMesh:
		return "mesh"
	default:
		return "none"
	}
}

// Shape is the collider carried by a RigidBody. Only the fields relevant to
// Kind are read. Primitive kinds go into the octree as a single volume; mesh
// shapes are split into one entry per face.
type Shape struct {
	Kind       ShapeKind
	Radius     float32    // sphere, capsule
	HalfHeight float32    // capsule segment half length
	Size       rl.Vector3 // box full size
	Offset     rl.Vector3 // sphere, box center offset in local space
	Mesh       *components.MeshCollider
}

func SphereShape(radius float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

func CapsuleShape(radius, halfHeight float32) Shape {
	return Shape{Kind: ShapeCapsule, Radius: radius, HalfHeight: halfHeight}
}

func BoxShape(size rl.Vector3) Shape {
	return Shape{Kind: ShapeBox, Size: size}
}

func MeshShape(mesh *components.MeshCollider) Shape {
	return Shape{Kind: ShapeMesh, Mesh: mesh}
}

// ShapeFromObject derives a Shape from the collider components on g. Mesh
// colliders win over primitives.
func ShapeFromObject(g *engine.GameObject) Shape {
	if m := engine.GetComponent[*components.MeshCollider](g); m != nil {
		return MeshShape(m)
	}
	if b := engine.GetComponent[*components.BoxCollider](g); b != nil {
		s := BoxShape(b.Size)
		s.Offset = b.Offset
		return s
	}
	if c := engine.GetComponent[*components.CapsuleCollider](g); c != nil {
		return CapsuleShape(c.Radius, c.HalfHeight)
	}
	if sc := engine.GetComponent[*components.SphereCollider](g); sc != nil {
		s := SphereShape(sc.Radius)
		s.Offset = sc.Offset
		return s
	}
	return Shape{}
}

// pose is a world transform snapshot.
type pose struct {
	position rl.Vector3
	rotation rl.Quaternion
	scale    rl.Vector3
}

func poseOf(g *engine.GameObject) pose {
	return pose{position: g.WorldPosition(), rotation: g.WorldRotation(), scale: g.WorldScale()}
}

func (p pose) absScale() rl.Vector3 {
	return rl.Vector3{X: math32.Abs(p.scale.X), Y: math32.Abs(p.scale.Y), Z: math32.Abs(p.scale.Z)}
}

func (p pose) transformPoint(local rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(p.position, rl.Vector3RotateByQuaternion(rl.Vector3Multiply(local, p.scale), p.rotation))
}

func (s Shape) center(p pose) rl.Vector3 {
	return p.transformPoint(s.Offset)
}

// semiAxes returns the scaled sphere radii along local X, Y, Z.
func (s Shape) semiAxes(p pose) rl.Vector3 {
	return rl.Vector3Scale(p.absScale(), s.Radius)
}

// capsule returns the world segment and radius of a capsule shape.
func (s Shape) capsule(p pose) (a, b rl.Vector3, radius float32) {
	sc := p.absScale()
	axis := rl.Vector3RotateByQuaternion(rl.Vector3{Y: s.HalfHeight * sc.Y}, p.rotation)
	radius = s.Radius * math32.Max(sc.X, sc.Z)
	return rl.Vector3Subtract(p.position, axis), rl.Vector3Add(p.position, axis), radius
}

func (s Shape) obb(p pose) OBB {
	return NewOBB(s.center(p), rl.Vector3Multiply(s.Size, p.absScale()), p.rotation)
}

// meshOBB wraps the model-space bounds of a mesh in the current pose.
func (s Shape) meshOBB(p pose) OBB {
	local := s.Mesh.LocalBounds()
	size := rl.Vector3Multiply(rl.Vector3Subtract(local.Max, local.Min), p.absScale())
	return NewOBB(p.transformPoint(local.Center()), size, p.rotation)
}

// Bounds returns the world AABB of the shape on g.
func (s Shape) Bounds(g *engine.GameObject) components.AABB {
	p := poseOf(g)
	switch s.Kind {
	case ShapeSphere:
		return OBB{Center: s.center(p), HalfSize: s.semiAxes(p), Rotation: p.rotation}.Bounds()
	case ShapeCapsule:
		a, b, r := s.capsule(p)
		return components.EmptyAABB().Extend(a).Extend(b).Pad(r)
	case ShapeBox:
		return s.obb(p).Bounds()
	case ShapeMesh:
		if s.Mesh != nil && s.Mesh.IsBuilt() {
			return s.Mesh.GetBounds()
		}
	}
	return components.NewAABBFromCenter(p.position, rl.Vector3{})
}

// ExtentInDirection returns how far the shape on g reaches from g's origin
// along dir, taking rotation and non-uniform scale into account. An offset
// collider reaches further on the side it is shifted to.
func (s Shape) ExtentInDirection(g *engine.GameObject, dir rl.Vector3) float32 {
	if rl.Vector3LengthSqr(dir) == 0 {
		return 0
	}
	p := poseOf(g)
	n := rl.Vector3Normalize(dir)
	d := rl.Vector3RotateByQuaternion(n, rl.QuaternionInvert(p.rotation))

	var extent float32
	var center rl.Vector3
	switch s.Kind {
	case ShapeSphere:
		a := s.semiAxes(p)
		if a.X == 0 || a.Y == 0 || a.Z == 0 {
			return 0
		}
		k := (d.X*d.X)/(a.X*a.X) + (d.Y*d.Y)/(a.Y*a.Y) + (d.Z*d.Z)/(a.Z*a.Z)
		extent, center = 1/math32.Sqrt(k), s.center(p)
	case ShapeCapsule:
		sc := p.absScale()
		return capsuleExtent(d, s.Radius*math32.Max(sc.X, sc.Z), s.HalfHeight*sc.Y)
	case ShapeBox:
		box := s.obb(p)
		extent, center = box.ExtentInDirection(dir), box.Center
	case ShapeMesh:
		if s.Mesh == nil || len(s.Mesh.Local) == 0 {
			return 0
		}
		box := s.meshOBB(p)
		extent, center = box.ExtentInDirection(dir), box.Center
	default:
		return 0
	}
	return math32.Max(0, extent+rl.Vector3DotProduct(rl.Vector3Subtract(center, p.position), n))
}

// capsuleExtent measures from the capsule center along the local unit
// direction d to the surface of a Y-aligned capsule.
func capsuleExtent(d rl.Vector3, radius, halfHeight float32) float32 {
	horizontal := math32.Sqrt(d.X*d.X + d.Z*d.Z)
	dy := math32.Abs(d.Y)
	if horizontal > 1e-6 {
		t := radius / horizontal
		if t*dy <= halfHeight {
			return t
		}
	}
	// Exit through a hemispherical cap centered halfHeight along Y
	return halfHeight*dy + math32.Sqrt(halfHeight*halfHeight*dy*dy-halfHeight*halfHeight+radius*radius)
}

// Raycast intersects the shape on g with a ray. dir must be normalized.
func (s Shape) Raycast(g *engine.GameObject, origin, dir rl.Vector3, maxDistance float32) (float32, rl.Vector3, bool) {
	p := poseOf(g)
	switch s.Kind {
	case ShapeSphere:
		return rayEllipsoid(origin, dir, s.center(p), s.semiAxes(p), p.rotation, maxDistance)
	case ShapeCapsule:
		a, b, r := s.capsule(p)
		return rayCapsule(origin, dir, a, b, r, maxDistance)
	case ShapeBox:
		return s.obb(p).IntersectRay(origin, dir, maxDistance)
	case ShapeMesh:
		if s.Mesh != nil {
			return s.Mesh.Raycast(origin, dir, maxDistance)
		}
	}
	return 0, rl.Vector3{}, false
}
