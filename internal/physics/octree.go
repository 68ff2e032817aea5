package physics

import (
	"iter"

	"orbit3d/internal/components"
	"orbit3d/internal/config"
	"orbit3d/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxGrowSteps caps how many times the root can double while reaching out
// to a far item.
const maxGrowSteps = 64

// Octree is a loose octree over static colliders. Each node's bounds are
// widened by Overlap so items near a split plane can still sink into a child.
// Mesh colliders may be inserted one entry per face.
type Octree struct {
	threshold int
	depthMax  int
	overlap   float32

	root     *octreeNode
	byObject map[*engine.GameObject][]*octreeItem
	count    int
}

type octreeItem struct {
	object *engine.GameObject
	shape  Shape
	tri    *components.Triangle // set for face entries of a split mesh
	bounds components.AABB
	node   *octreeNode
}

type octreeNode struct {
	center   rl.Vector3
	half     float32
	depth    int
	parent   *octreeNode
	children *[8]*octreeNode
	items    []*octreeItem
	count    int // items in this subtree
}

func NewOctree(cfg config.OctreeConfig) *Octree {
	threshold := cfg.ObjectsThreshold
	if threshold < 1 {
		threshold = 1
	}
	return &Octree{
		threshold: threshold,
		depthMax:  cfg.DepthMax,
		overlap:   cfg.Overlap,
		byObject:  make(map[*engine.GameObject][]*octreeItem),
	}
}

// Len returns the number of entries, counting each mesh face separately.
func (o *Octree) Len() int {
	return o.count
}

// Contains reports whether obj has any entries in the tree.
func (o *Octree) Contains(obj *engine.GameObject) bool {
	_, ok := o.byObject[obj]
	return ok
}

// Bounds returns the loose bounds of the root, or false when the tree is empty.
func (o *Octree) Bounds() (components.AABB, bool) {
	if o.root == nil {
		return components.AABB{}, false
	}
	return o.looseBounds(o.root), true
}

// Insert adds the collider on obj. With splitByFace a built mesh collider is
// stored as one entry per triangle; otherwise the whole shape is one entry.
// Inserting an object that is already present does nothing.
func (o *Octree) Insert(obj *engine.GameObject, splitByFace bool) {
	if _, ok := o.byObject[obj]; ok {
		return
	}
	shape := shapeOf(obj)
	if shape.Kind == ShapeNone {
		return
	}

	var items []*octreeItem
	if splitByFace && shape.Kind == ShapeMesh && shape.Mesh != nil && shape.Mesh.IsBuilt() {
		tris := shape.Mesh.Triangles
		items = make([]*octreeItem, 0, len(tris))
		for i := range tris {
			items = append(items, &octreeItem{
				object: obj,
				shape:  shape,
				tri:    &tris[i],
				bounds: tris[i].Bounds().Pad(1e-3),
			})
		}
	} else {
		items = append(items, &octreeItem{object: obj, shape: shape, bounds: shape.Bounds(obj).Pad(1e-3)})
	}
	if len(items) == 0 {
		return
	}

	for _, it := range items {
		o.insertItem(it)
	}
	o.byObject[obj] = items
}

// Remove drops every entry belonging to obj.
func (o *Octree) Remove(obj *engine.GameObject) {
	items, ok := o.byObject[obj]
	if !ok {
		return
	}
	delete(o.byObject, obj)
	for _, it := range items {
		o.removeItem(it)
	}
	if o.root != nil && o.root.count == 0 {
		o.root = nil
	}
}

// Refresh re-inserts obj after its transform or collider changed.
func (o *Octree) Refresh(obj *engine.GameObject, splitByFace bool) {
	o.Remove(obj)
	if shape := shapeOf(obj); shape.Kind == ShapeMesh && shape.Mesh != nil {
		shape.Mesh.Rebuild()
	}
	o.Insert(obj, splitByFace)
}

// Raycast returns the nearest entry hit within maxDistance, skipping entries
// owned by ignore or any of its descendants.
func (o *Octree) Raycast(origin, direction rl.Vector3, maxDistance float32, ignore *engine.GameObject) (RaycastHit, bool) {
	if o.root == nil || rl.Vector3LengthSqr(direction) == 0 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	q := rayQuery{origin: origin, dir: direction, best: maxDistance, ignore: ignore}
	o.raycastNode(o.root, &q)
	if q.hit == nil {
		return RaycastHit{}, false
	}
	return RaycastHit{
		Object:   q.hit.object,
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, q.best)),
		Normal:   q.normal,
		Distance: q.best,
	}, true
}

type rayQuery struct {
	origin, dir rl.Vector3
	best        float32
	ignore      *engine.GameObject
	hit         *octreeItem
	normal      rl.Vector3
}

func (o *Octree) raycastNode(n *octreeNode, q *rayQuery) {
	if n.count == 0 {
		return
	}
	tmin, _, ok := o.looseBounds(n).IntersectRay(q.origin, q.dir)
	if !ok || tmin > q.best {
		return
	}

	for _, it := range n.items {
		if q.ignore != nil && it.object.IsDescendantOf(q.ignore) {
			continue
		}
		if tmin, _, ok := it.bounds.IntersectRay(q.origin, q.dir); !ok || tmin > q.best {
			continue
		}
		if it.tri != nil {
			if t, ok := components.RayTriangle(q.origin, q.dir, it.tri); ok && t <= q.best {
				q.best, q.hit, q.normal = t, it, it.tri.FacingNormal(q.dir)
			}
			continue
		}
		if t, normal, ok := it.shape.Raycast(it.object, q.origin, q.dir, q.best); ok && t <= q.best {
			q.best, q.hit, q.normal = t, it, normal
		}
	}

	if n.children != nil {
		for _, child := range n.children {
			o.raycastNode(child, q)
		}
	}
}

// Nodes yields the loose bounds and depth of every node, parents first.
func (o *Octree) Nodes() iter.Seq2[components.AABB, int] {
	return func(yield func(components.AABB, int) bool) {
		if o.root != nil {
			o.walkNodes(o.root, yield)
		}
	}
}

func (o *Octree) walkNodes(n *octreeNode, yield func(components.AABB, int) bool) bool {
	if !yield(o.looseBounds(n), n.depth) {
		return false
	}
	if n.children != nil {
		for _, child := range n.children {
			if !o.walkNodes(child, yield) {
				return false
			}
		}
	}
	return true
}

func (o *Octree) looseBounds(n *octreeNode) components.AABB {
	h := n.half * (1 + o.overlap)
	return components.NewAABBFromCenter(n.center, rl.Vector3{X: h, Y: h, Z: h})
}

func (o *Octree) insertItem(it *octreeItem) {
	if o.root == nil {
		half := it.bounds.HalfSize()
		size := math32.Max(math32.Max(half.X, half.Y), half.Z)
		o.root = &octreeNode{center: it.bounds.Center(), half: math32.Max(size, 1)}
	}
	o.count++
	for steps := 0; steps < maxGrowSteps && !o.looseBounds(o.root).Contains(it.bounds); steps++ {
		o.grow(it.bounds.Center())
	}
	o.insertInto(o.root, it)
}

// grow doubles the root toward target, keeping the old root as one octant.
func (o *Octree) grow(target rl.Vector3) {
	old := o.root
	center := old.center
	if target.X < old.center.X {
		center.X -= old.half
	} else {
		center.X += old.half
	}
	if target.Y < old.center.Y {
		center.Y -= old.half
	} else {
		center.Y += old.half
	}
	if target.Z < old.center.Z {
		center.Z -= old.half
	} else {
		center.Z += old.half
	}

	root := &octreeNode{center: center, half: old.half * 2, count: old.count}
	root.children = new([8]*octreeNode)
	at := octant(center, old.center)
	for i := range root.children {
		if i == at {
			old.parent = root
			root.children[i] = old
			continue
		}
		root.children[i] = &octreeNode{center: childCenter(center, old.half, i), half: old.half, depth: 1, parent: root}
	}
	deepen(old)
	o.root = root
}

func deepen(n *octreeNode) {
	n.depth++
	if n.children != nil {
		for _, c := range n.children {
			deepen(c)
		}
	}
}

func (o *Octree) insertInto(n *octreeNode, it *octreeItem) {
	for {
		n.count++
		if n.children == nil {
			break
		}
		child := n.children[octant(n.center, it.bounds.Center())]
		if !o.looseBounds(child).Contains(it.bounds) {
			break
		}
		n = child
	}
	n.items = append(n.items, it)
	it.node = n

	if n.children == nil && len(n.items) > o.threshold && n.depth < o.depthMax {
		o.split(n)
	}
}

// split pushes a leaf's items down into freshly made children where they fit.
func (o *Octree) split(n *octreeNode) {
	n.children = new([8]*octreeNode)
	for i := range n.children {
		n.children[i] = &octreeNode{
			center: childCenter(n.center, n.half/2, i),
			half:   n.half / 2,
			depth:  n.depth + 1,
			parent: n,
		}
	}

	kept := n.items[:0]
	var moved []*octreeItem
	for _, it := range n.items {
		child := n.children[octant(n.center, it.bounds.Center())]
		if o.looseBounds(child).Contains(it.bounds) {
			moved = append(moved, it)
		} else {
			kept = append(kept, it)
		}
	}
	n.items = kept
	for _, it := range moved {
		// n.count already includes it
		o.insertInto(n.children[octant(n.center, it.bounds.Center())], it)
	}
}

func (o *Octree) removeItem(it *octreeItem) {
	n := it.node
	if n == nil {
		return
	}
	for i, other := range n.items {
		if other == it {
			last := len(n.items) - 1
			n.items[i] = n.items[last]
			n.items[last] = nil
			n.items = n.items[:last]
			break
		}
	}
	it.node = nil
	o.count--

	var collapse *octreeNode
	for p := n; p != nil; p = p.parent {
		p.count--
		if p.children != nil && p.count <= o.threshold {
			collapse = p
		}
	}
	if collapse != nil {
		o.merge(collapse)
	}
}

// merge pulls every item in n's subtree back into n and drops its children.
func (o *Octree) merge(n *octreeNode) {
	var gather func(c *octreeNode)
	gather = func(c *octreeNode) {
		for _, it := range c.items {
			it.node = n
			n.items = append(n.items, it)
		}
		c.items = nil
		if c.children != nil {
			for _, gc := range c.children {
				gather(gc)
			}
		}
	}
	for _, c := range n.children {
		gather(c)
	}
	n.children = nil
}

// octant packs the side of center that p falls on into bits: X is bit 0,
// Y bit 1, Z bit 2. A set bit means p is at or above center on that axis.
func octant(center, p rl.Vector3) int {
	i := 0
	if p.X >= center.X {
		i |= 1
	}
	if p.Y >= center.Y {
		i |= 2
	}
	if p.Z >= center.Z {
		i |= 4
	}
	return i
}

func childCenter(center rl.Vector3, offset float32, i int) rl.Vector3 {
	c := center
	c.X += sign(i&1 != 0) * offset
	c.Y += sign(i&2 != 0) * offset
	c.Z += sign(i&4 != 0) * offset
	return c
}

func sign(positive bool) float32 {
	if positive {
		return 1
	}
	return -1
}

// shapeOf prefers the shape stored on the body, falling back to the
// object's collider components.
func shapeOf(obj *engine.GameObject) Shape {
	if rb := engine.GetComponent[*RigidBody](obj); rb != nil && rb.Shape.Kind != ShapeNone {
		return rb.Shape
	}
	return ShapeFromObject(obj)
}
