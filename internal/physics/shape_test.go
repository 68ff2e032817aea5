package physics

import (
	"math"
	"testing"

	"orbit3d/internal/components"
	"orbit3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestShapeFromObjectPrefersMesh(t *testing.T) {
	g := engine.NewGameObject("mixed")
	g.AddComponent(components.NewSphereCollider(1))
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	if got := ShapeFromObject(g).Kind; got != ShapeBox {
		t.Errorf("box should win over sphere, got %s", got)
	}

	g.AddComponent(components.NewMeshCollider())
	if got := ShapeFromObject(g).Kind; got != ShapeMesh {
		t.Errorf("mesh should win, got %s", got)
	}

	if got := ShapeFromObject(engine.NewGameObject("empty")).Kind; got != ShapeNone {
		t.Errorf("empty object should have no shape, got %s", got)
	}
}

func TestExtentInDirection(t *testing.T) {
	quarterY := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/2)

	tests := []struct {
		name     string
		shape    Shape
		scale    rl.Vector3
		rotation rl.Quaternion
		dir      rl.Vector3
		want     float32
	}{
		{"sphere", SphereShape(1.5), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{X: 1, Y: 1}, 1.5},
		{"ellipsoid long axis", SphereShape(1), rl.Vector3{X: 2, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{X: 1}, 2},
		{"ellipsoid short axis", SphereShape(1), rl.Vector3{X: 2, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{Y: -1}, 1},
		{"box face", BoxShape(rl.Vector3{X: 2, Y: 4, Z: 6}), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{Z: 1}, 3},
		{"box diagonal", BoxShape(rl.Vector3{X: 2, Y: 4, Z: 6}), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{X: 1, Y: 1}, float32(math.Sqrt2)},
		{"rotated box", BoxShape(rl.Vector3{X: 2, Y: 2, Z: 6}), rl.Vector3{X: 1, Y: 1, Z: 1}, quarterY, rl.Vector3{X: 1}, 3},
		{"capsule side", CapsuleShape(0.5, 1), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{X: -1}, 0.5},
		{"capsule top", CapsuleShape(0.5, 1), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{Y: 1}, 1.5},
		{"scaled capsule", CapsuleShape(0.5, 1), rl.Vector3{X: 2, Y: 2, Z: 2}, rl.QuaternionIdentity(), rl.Vector3{Y: -1}, 3},
		{"offset sphere ahead", withOffset(SphereShape(1), rl.Vector3{Y: 1}), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{Y: 1}, 2},
		{"offset sphere behind", withOffset(SphereShape(1), rl.Vector3{Y: 1}), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{Y: -1}, 0},
		{"offset sphere side", withOffset(SphereShape(1), rl.Vector3{Y: 1}), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{X: 1}, 1},
		{"offset box", withOffset(BoxShape(rl.Vector3{X: 2, Y: 2, Z: 2}), rl.Vector3{X: 2}), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity(), rl.Vector3{X: 1}, 3},
		{"rotated offset box", withOffset(BoxShape(rl.Vector3{X: 2, Y: 2, Z: 2}), rl.Vector3{X: 2}), rl.Vector3{X: 1, Y: 1, Z: 1}, quarterY, rl.Vector3{Z: -1}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := engine.NewGameObject(tt.name)
			g.Transform.Scale = tt.scale
			g.Transform.Rotation = tt.rotation
			if got := tt.shape.ExtentInDirection(g, tt.dir); !near(got, tt.want, 1e-4) {
				t.Errorf("ExtentInDirection(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func withOffset(s Shape, offset rl.Vector3) Shape {
	s.Offset = offset
	return s
}

func TestExtentOfZeroDirection(t *testing.T) {
	if got := SphereShape(1).ExtentInDirection(engine.NewGameObject("s"), rl.Vector3{}); got != 0 {
		t.Errorf("zero direction extent = %v, want 0", got)
	}
}

func TestCapsuleExtentOnCap(t *testing.T) {
	// 45 degrees up from the side lands on the hemisphere
	d := rl.Vector3Normalize(rl.Vector3{X: 1, Y: 1})
	got := capsuleExtent(d, 0.5, 0.2)
	// |t*d - c| = 0.5 with c = (0, 0.2, 0)
	p := rl.Vector3Scale(d, got)
	if !near(rl.Vector3Distance(p, rl.Vector3{Y: 0.2}), 0.5, 1e-4) {
		t.Errorf("extent %v does not land on the cap", got)
	}
}

func TestRaycastShapes(t *testing.T) {
	tests := []struct {
		name       string
		shape      Shape
		scale      rl.Vector3
		origin     rl.Vector3
		dir        rl.Vector3
		wantDist   float32
		wantNormal rl.Vector3
	}{
		{"sphere", SphereShape(1), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{Z: -5}, rl.Vector3{Z: 1}, 4, rl.Vector3{Z: -1}},
		{"ellipsoid", SphereShape(1), rl.Vector3{X: 2, Y: 1, Z: 1}, rl.Vector3{X: 5}, rl.Vector3{X: -1}, 3, rl.Vector3{X: 1}},
		{"box", BoxShape(rl.Vector3{X: 2, Y: 2, Z: 2}), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{Y: 10}, rl.Vector3{Y: -1}, 9, rl.Vector3{Y: 1}},
		{"capsule side", CapsuleShape(0.5, 1), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{X: 5, Y: 0.5}, rl.Vector3{X: -1}, 4.5, rl.Vector3{X: 1}},
		{"capsule cap", CapsuleShape(0.5, 1), rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, 3.5, rl.Vector3{Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := engine.NewGameObject(tt.name)
			g.Transform.Scale = tt.scale
			hit, ok := RaycastShape(g, tt.shape, tt.origin, tt.dir, 100)
			if !ok {
				t.Fatal("expected a hit")
			}
			if !near(hit.Distance, tt.wantDist, 1e-4) {
				t.Errorf("distance = %v, want %v", hit.Distance, tt.wantDist)
			}
			if !nearVec(hit.Normal, tt.wantNormal, 1e-4) {
				t.Errorf("normal = %v, want %v", hit.Normal, tt.wantNormal)
			}
			if hit.Object != g {
				t.Error("hit should report the object")
			}
		})
	}
}

func TestRaycastShapeMissAndFar(t *testing.T) {
	g := engine.NewGameObject("sphere")
	s := SphereShape(1)

	if _, ok := RaycastShape(g, s, rl.Vector3{X: 5, Z: -5}, rl.Vector3{Z: 1}, 100); ok {
		t.Error("parallel offset ray should miss")
	}
	if _, ok := RaycastShape(g, s, rl.Vector3{Z: -5}, rl.Vector3{Z: 1}, 3); ok {
		t.Error("hit beyond maxDistance should be ignored")
	}
	if _, ok := RaycastShape(g, s, rl.Vector3{Z: -5}, rl.Vector3{}, 100); ok {
		t.Error("zero direction should miss")
	}
	// Pointing away
	if _, ok := RaycastShape(g, s, rl.Vector3{Z: -5}, rl.Vector3{Z: -1}, 100); ok {
		t.Error("ray pointing away should miss")
	}
}

func TestShapeBoundsEncloseRotatedBox(t *testing.T) {
	g := engine.NewGameObject("box")
	g.Transform.Rotation = rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, math.Pi/4)
	b := BoxShape(rl.Vector3{X: 2, Y: 2, Z: 2}).Bounds(g)

	want := float32(math.Sqrt2)
	if !near(b.Max.X, want, 1e-4) || !near(b.Max.Y, want, 1e-4) || !near(b.Max.Z, 1, 1e-4) {
		t.Errorf("bounds = %+v", b)
	}
}
