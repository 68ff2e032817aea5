package physics

import (
	"github.com/dhconnelly/rtreego"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// candidateTolerance is the half size of the point rectangles stored in
// the R-tree.
const candidateTolerance = 1e-3

// GravityCandidates is a per-tick spatial snapshot of the gravity sources,
// queried for the source nearest to a body.
type GravityCandidates struct {
	tree *rtreego.Rtree
	byID map[BodyID]*gravityCandidate
}

type gravityCandidate struct {
	id     BodyID
	center rl.Vector3
	rect   rtreego.Rect
}

func (c *gravityCandidate) Bounds() rtreego.Rect {
	return c.rect
}

func toPoint(v rl.Vector3) rtreego.Point {
	return rtreego.Point{float64(v.X), float64(v.Y), float64(v.Z)}
}

// NewGravityCandidates indexes the world positions of sources.
func NewGravityCandidates(sources []*RigidBody) *GravityCandidates {
	c := &GravityCandidates{byID: make(map[BodyID]*gravityCandidate, len(sources))}
	objs := make([]rtreego.Spatial, 0, len(sources))
	for _, rb := range sources {
		g := rb.GetGameObject()
		if g == nil || rb.id == 0 {
			continue
		}
		center := g.WorldPosition()
		cand := &gravityCandidate{id: rb.id, center: center, rect: toPoint(center).ToRect(candidateTolerance)}
		c.byID[rb.id] = cand
		objs = append(objs, cand)
	}
	c.tree = rtreego.NewTree(3, 2, 8, objs...)
	return c
}

func (c *GravityCandidates) Len() int {
	return len(c.byID)
}

// Has reports whether id was a gravity source when the snapshot was taken.
func (c *GravityCandidates) Has(id BodyID) bool {
	_, ok := c.byID[id]
	return ok
}

// Nearest returns the source closest to p other than exclude, or 0.
func (c *GravityCandidates) Nearest(p rl.Vector3, exclude BodyID) BodyID {
	if len(c.byID) == 0 {
		return 0
	}
	for _, s := range c.tree.NearestNeighbors(2, toPoint(p)) {
		cand, ok := s.(*gravityCandidate)
		if !ok || cand == nil || cand.id == exclude {
			continue
		}
		return cand.id
	}
	return 0
}

// SelectGravityBody picks the source rb should fall toward next tick and
// stores it in rb.GravityBody.
//
// The nearest source wins, with hysteresis: a body keeps its current source
// while standing on it or while it is still the nearest. Otherwise the
// gravity channel's time without intersection accumulates and the switch
// happens once it reaches the World's IntersectionTimeout. A body with no
// valid current source adopts the nearest immediately. With no candidates at
// all the result is 0 and the World default field applies.
func (w *World) SelectGravityBody(rb *RigidBody, candidates *GravityCandidates, deltaTime float32) BodyID {
	g := rb.GetGameObject()
	current := rb.GravityBody
	if g == nil || candidates == nil || candidates.Len() == 0 {
		rb.GravityBody = 0
		return 0
	}

	vg := rb.VelocityGravity
	nearest := candidates.Nearest(g.WorldPosition(), rb.id)
	if current == 0 || current == rb.id || !candidates.Has(current) || w.bodies[current] == nil {
		w.setGravityBody(rb, nearest)
		return rb.GravityBody
	}

	if nearest == current || nearest == 0 || w.standingOn(rb, current) {
		vg.TimeWithoutIntersection = 0
		vg.UpdatesWithoutIntersection = 0
		return current
	}

	vg.TimeWithoutIntersection += deltaTime
	vg.UpdatesWithoutIntersection++
	if vg.TimeWithoutIntersection >= float32(w.Context.IntersectionTimeout.Seconds()) {
		w.setGravityBody(rb, nearest)
	}
	return rb.GravityBody
}

// standingOn reports whether the gravity channel's last collision was with
// source or anything parented under it.
func (w *World) standingOn(rb *RigidBody, source BodyID) bool {
	col := rb.VelocityGravity.Collision
	src := w.bodies[source]
	if col == nil || col.Object == nil || src == nil || src.GetGameObject() == nil {
		return false
	}
	return col.Object.IsDescendantOf(src.GetGameObject())
}

func (w *World) setGravityBody(rb *RigidBody, id BodyID) {
	if rb.GravityBody != id {
		w.logGravitySwitch(rb, rb.GravityBody, id)
	}
	rb.GravityBody = id
	rb.VelocityGravity.TimeWithoutIntersection = 0
	rb.VelocityGravity.UpdatesWithoutIntersection = 0
	rb.lastGravityDistance = 0
}
