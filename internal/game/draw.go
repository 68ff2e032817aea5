package game

import (
	"orbit3d/internal/engine"
	"orbit3d/internal/physics"
	"orbit3d/internal/world"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var octreeDepthColors = []rl.Color{rl.DarkGray, rl.Gray, rl.SkyBlue, rl.Lime, rl.Gold, rl.Orange, rl.Red, rl.Magenta}

func drawBody(g *engine.GameObject) {
	rb := engine.GetComponent[*physics.RigidBody](g)
	if rb == nil {
		return
	}
	color := rl.LightGray
	if a := engine.GetComponent[*world.Appearance](g); a != nil {
		color = a.Tint()
	}
	wire := rl.Fade(rl.Black, 0.25)

	s := rb.Shape
	switch s.Kind {
	case physics.ShapeSphere:
		drawTransformed(g, s.Offset, func() {
			rl.DrawSphereEx(rl.Vector3{}, s.Radius, 16, 24, color)
			rl.DrawSphereWires(rl.Vector3{}, s.Radius*1.001, 8, 12, wire)
		})
	case physics.ShapeBox:
		drawTransformed(g, s.Offset, func() {
			rl.DrawCubeV(rl.Vector3{}, s.Size, color)
			rl.DrawCubeWiresV(rl.Vector3{}, s.Size, wire)
		})
	case physics.ShapeCapsule:
		drawTransformed(g, rl.Vector3{}, func() {
			a, b := rl.Vector3{Y: -s.HalfHeight}, rl.Vector3{Y: s.HalfHeight}
			rl.DrawCapsule(a, b, s.Radius, 12, 6, color)
			rl.DrawCapsuleWires(a, b, s.Radius, 12, 6, wire)
		})
	case physics.ShapeMesh:
		if s.Mesh == nil {
			return
		}
		for i := range s.Mesh.Triangles {
			t := &s.Mesh.Triangles[i]
			// Colliders are two sided
			rl.DrawTriangle3D(t.V0, t.V1, t.V2, color)
			rl.DrawTriangle3D(t.V0, t.V2, t.V1, color)
		}
	}
}

// drawTransformed runs draw in g's world space, shifted by a local offset.
func drawTransformed(g *engine.GameObject, offset rl.Vector3, draw func()) {
	pos := g.WorldPosition()
	scale := g.WorldScale()
	axis, angle := axisAngle(g.WorldRotation())

	rl.PushMatrix()
	rl.Translatef(pos.X, pos.Y, pos.Z)
	rl.Rotatef(angle*rl.Rad2deg, axis.X, axis.Y, axis.Z)
	rl.Scalef(scale.X, scale.Y, scale.Z)
	rl.Translatef(offset.X, offset.Y, offset.Z)
	draw()
	rl.PopMatrix()
}

// axisAngle returns q as a rotation axis and an angle in radians.
func axisAngle(q rl.Quaternion) (rl.Vector3, float32) {
	q = rl.QuaternionNormalize(q)
	if q.W < 0 {
		q = rl.Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
	}
	s := math32.Sqrt(math32.Max(0, 1-q.W*q.W))
	if s < 1e-6 {
		return rl.Vector3{Y: 1}, 0
	}
	return rl.Vector3{X: q.X / s, Y: q.Y / s, Z: q.Z / s}, 2 * math32.Acos(math32.Min(1, q.W))
}

func (g *Game) drawDebug() {
	pw := g.World.Physics

	for bounds, depth := range pw.Index().Nodes() {
		c := octreeDepthColors[depth%len(octreeDepthColors)]
		rl.DrawBoundingBox(rl.NewBoundingBox(bounds.Min, bounds.Max), rl.Fade(c, 0.35))
	}

	for _, rb := range pw.DynamicBodies() {
		obj := rb.GetGameObject()
		pos := obj.WorldPosition()

		if src := pw.Body(rb.GravityBody); src != nil {
			rl.DrawLine3D(pos, src.GetGameObject().WorldPosition(), rl.Fade(rl.Violet, 0.5))
		}
		up := rl.Vector3RotateByQuaternion(rb.Axes.Up, obj.WorldRotation())
		rl.DrawLine3D(pos, rl.Vector3Add(pos, rl.Vector3Scale(up, 2)), rl.Green)

		if hit := rb.VelocityGravity.Intersection; hit != nil {
			color := rl.Yellow
			if rb.IsGrounded() {
				color = rl.Red
			}
			rl.DrawSphere(hit.Point, 0.1, color)
		}
		if !rb.Safe {
			rl.DrawSphereWires(rb.Safetynet.Position, 0.5, 6, 6, rl.Red)
		}
	}
}
