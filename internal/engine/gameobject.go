package engine

import (
	"iter"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is the local pose of a GameObject relative to its parent.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

var nextUID atomic.Uint64

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.QuaternionIdentity(),
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponents returns every component assignable to T, in insertion order.
func GetComponents[T Component](g *GameObject) []T {
	var out []T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
	for _, child := range g.Children {
		child.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// IsDescendantOf reports whether g is ancestor or lives somewhere below it.
func (g *GameObject) IsDescendantOf(ancestor *GameObject) bool {
	for cur := g; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Traverse yields g and all of its descendants depth-first, parents before
// children. Children added during iteration are not guaranteed to be visited.
func (g *GameObject) Traverse() iter.Seq[*GameObject] {
	return func(yield func(*GameObject) bool) {
		g.walk(yield)
	}
}

func (g *GameObject) walk(yield func(*GameObject) bool) bool {
	if !yield(g) {
		return false
	}
	for _, child := range g.Children {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentRot := g.Parent.WorldRotation()
	parentScale := g.Parent.WorldScale()

	scaled := rl.Vector3Multiply(g.Transform.Position, parentScale)
	return rl.Vector3Add(parentPos, rl.Vector3RotateByQuaternion(scaled, parentRot))
}

func (g *GameObject) WorldRotation() rl.Quaternion {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.QuaternionMultiply(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	return rl.Vector3Multiply(g.Parent.WorldScale(), g.Transform.Scale)
}

// SetWorldPosition moves g so that its world position equals pos.
func (g *GameObject) SetWorldPosition(pos rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = pos
		return
	}
	parentPos := g.Parent.WorldPosition()
	parentRot := g.Parent.WorldRotation()
	parentScale := g.Parent.WorldScale()

	local := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(pos, parentPos), rl.QuaternionInvert(parentRot))
	g.Transform.Position = rl.Vector3{
		X: safeDiv(local.X, parentScale.X),
		Y: safeDiv(local.Y, parentScale.Y),
		Z: safeDiv(local.Z, parentScale.Z),
	}
}

// SetWorldRotation rotates g so that its world rotation equals q.
func (g *GameObject) SetWorldRotation(q rl.Quaternion) {
	if g.Parent == nil {
		g.Transform.Rotation = q
		return
	}
	parentRot := g.Parent.WorldRotation()
	g.Transform.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(rl.QuaternionInvert(parentRot), q))
}

func safeDiv(v, s float32) float32 {
	if s == 0 {
		return 0
	}
	return v / s
}
