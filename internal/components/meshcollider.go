package components

import (
	"orbit3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle represents a single triangle with precomputed normal
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
}

// NewTriangle builds a triangle and computes its normal from the winding.
func NewTriangle(v0, v1, v2 rl.Vector3) Triangle {
	normal := rl.Vector3CrossProduct(rl.Vector3Subtract(v1, v0), rl.Vector3Subtract(v2, v0))
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: rl.Vector3Normalize(normal)}
}

// Bounds returns the tight box around the triangle.
func (t *Triangle) Bounds() AABB {
	return EmptyAABB().Extend(t.V0).Extend(t.V1).Extend(t.V2)
}

func (t *Triangle) Centroid() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(t.V0, t.V1), t.V2), 1.0/3.0)
}

// PlaneTriangles returns two triangles spanning a width x depth quad in the
// local XZ plane, centered on the origin and facing +Y.
func PlaneTriangles(width, depth float32) []Triangle {
	hw, hd := width/2, depth/2
	a := rl.Vector3{X: -hw, Z: -hd}
	b := rl.Vector3{X: hw, Z: -hd}
	c := rl.Vector3{X: hw, Z: hd}
	d := rl.Vector3{X: -hw, Z: hd}
	return []Triangle{NewTriangle(a, c, b), NewTriangle(a, d, c)}
}

// BVHNode is a node in the bounding volume hierarchy
type BVHNode struct {
	Bounds    AABB
	Left      *BVHNode
	Right     *BVHNode
	Triangles []int // indices into the triangle array (only for leaf nodes)
}

// MeshCollider provides ray queries against mesh triangles.
// Triangles are baked into world space when built, so this is for static
// geometry: call Rebuild after moving the object.
type MeshCollider struct {
	engine.BaseComponent
	Local     []Triangle // model-space source triangles
	Triangles []Triangle // world-space triangles
	Root      *BVHNode

	localBounds AABB
	built       bool
}

func NewMeshCollider() *MeshCollider {
	return &MeshCollider{}
}

// BuildFromTriangles stores model-space triangles and bakes them into the
// owning object's current world transform.
func (m *MeshCollider) BuildFromTriangles(local []Triangle) {
	m.Local = local
	m.localBounds = EmptyAABB()
	for i := range local {
		m.localBounds = m.localBounds.Union(local[i].Bounds())
	}
	m.Rebuild()
}

// Rebuild re-bakes the world-space triangles and BVH from Local.
func (m *MeshCollider) Rebuild() {
	g := m.GetGameObject()
	if g == nil {
		return
	}
	pos := g.WorldPosition()
	rot := g.WorldRotation()
	scale := g.WorldScale()
	toWorld := func(v rl.Vector3) rl.Vector3 {
		return rl.Vector3Add(pos, rl.Vector3RotateByQuaternion(rl.Vector3Multiply(v, scale), rot))
	}

	m.Triangles = make([]Triangle, len(m.Local))
	for i, tri := range m.Local {
		m.Triangles[i] = NewTriangle(toWorld(tri.V0), toWorld(tri.V1), toWorld(tri.V2))
	}

	m.Root = nil
	if len(m.Triangles) > 0 {
		indices := make([]int, len(m.Triangles))
		for i := range indices {
			indices[i] = i
		}
		m.Root = m.buildBVHNode(indices, 0)
	}
	m.built = true
}

func (m *MeshCollider) buildBVHNode(indices []int, depth int) *BVHNode {
	node := &BVHNode{Bounds: m.computeBounds(indices)}

	// If few triangles or max depth, make leaf
	if len(indices) <= 4 || depth > 20 {
		node.Triangles = indices
		return node
	}

	size := rl.Vector3Subtract(node.Bounds.Max, node.Bounds.Min)
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > getAxisValue(size, axis) {
		axis = 2
	}

	mid := m.partitionTriangles(indices, axis)
	if mid == 0 || mid == len(indices) {
		node.Triangles = indices
		return node
	}

	node.Left = m.buildBVHNode(indices[:mid], depth+1)
	node.Right = m.buildBVHNode(indices[mid:], depth+1)
	return node
}

func (m *MeshCollider) computeBounds(indices []int) AABB {
	bounds := EmptyAABB()
	for _, idx := range indices {
		bounds = bounds.Union(m.Triangles[idx].Bounds())
	}
	return bounds
}

// partitionTriangles splits indices around the mean centroid on axis.
func (m *MeshCollider) partitionTriangles(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += getAxisValue(m.Triangles[idx].Centroid(), axis)
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		if getAxisValue(m.Triangles[indices[left]].Centroid(), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

func getAxisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Raycast returns the nearest triangle hit within far. dir must be
// normalized. The returned normal faces the ray origin.
func (m *MeshCollider) Raycast(origin, dir rl.Vector3, far float32) (dist float32, normal rl.Vector3, ok bool) {
	if !m.built || m.Root == nil {
		return 0, rl.Vector3{}, false
	}
	dist = far
	m.raycastNode(m.Root, origin, dir, &dist, &normal, &ok)
	return dist, normal, ok
}

func (m *MeshCollider) raycastNode(node *BVHNode, origin, dir rl.Vector3, best *float32, normal *rl.Vector3, hit *bool) {
	tmin, _, ok := node.Bounds.Pad(1e-4).IntersectRay(origin, dir)
	if !ok || tmin > *best {
		return
	}

	if node.Triangles != nil {
		for _, idx := range node.Triangles {
			tri := &m.Triangles[idx]
			if t, ok := RayTriangle(origin, dir, tri); ok && t <= *best {
				*best = t
				*normal = tri.FacingNormal(dir)
				*hit = true
			}
		}
		return
	}

	m.raycastNode(node.Left, origin, dir, best, normal, hit)
	m.raycastNode(node.Right, origin, dir, best, normal, hit)
}

// FacingNormal returns the triangle normal flipped to oppose dir.
func (t *Triangle) FacingNormal(dir rl.Vector3) rl.Vector3 {
	if rl.Vector3DotProduct(t.Normal, dir) > 0 {
		return rl.Vector3Negate(t.Normal)
	}
	return t.Normal
}

// RayTriangle is a two-sided Möller-Trumbore intersection. It returns the
// distance along dir to the hit point.
func RayTriangle(origin, dir rl.Vector3, tri *Triangle) (float32, bool) {
	const epsilon = 1e-7

	edge1 := rl.Vector3Subtract(tri.V1, tri.V0)
	edge2 := rl.Vector3Subtract(tri.V2, tri.V0)
	p := rl.Vector3CrossProduct(dir, edge2)
	det := rl.Vector3DotProduct(edge1, p)
	if math32.Abs(det) < epsilon {
		return 0, false
	}
	invDet := 1 / det

	s := rl.Vector3Subtract(origin, tri.V0)
	u := rl.Vector3DotProduct(s, p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := rl.Vector3CrossProduct(s, edge1)
	v := rl.Vector3DotProduct(dir, q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := rl.Vector3DotProduct(edge2, q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IsBuilt returns true if the BVH has been built
func (m *MeshCollider) IsBuilt() bool {
	return m.built
}

// TriangleCount returns the number of triangles in the collider
func (m *MeshCollider) TriangleCount() int {
	return len(m.Triangles)
}

// GetBounds returns the world-space AABB of the entire mesh collider
func (m *MeshCollider) GetBounds() AABB {
	if m.Root == nil {
		return AABB{}
	}
	return m.Root.Bounds
}

// LocalBounds returns the model-space AABB of the source triangles.
func (m *MeshCollider) LocalBounds() AABB {
	if len(m.Local) == 0 {
		return AABB{}
	}
	return m.localBounds
}
