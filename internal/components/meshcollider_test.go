package components

import (
	"math/rand"
	"testing"

	"orbit3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func meshObject(pos rl.Vector3, tris []Triangle) (*engine.GameObject, *MeshCollider) {
	g := engine.NewGameObject("mesh")
	g.Transform.Position = pos
	m := NewMeshCollider()
	g.AddComponent(m)
	m.BuildFromTriangles(tris)
	return g, m
}

func TestPlaneTrianglesFaceUp(t *testing.T) {
	for _, tri := range PlaneTriangles(4, 2) {
		if !near(tri.Normal.Y, 1, 1e-6) || tri.Normal.X != 0 || tri.Normal.Z != 0 {
			t.Errorf("normal = %v, want +Y", tri.Normal)
		}
	}
}

func TestRayTriangle(t *testing.T) {
	tri := NewTriangle(rl.Vector3{X: -1}, rl.Vector3{X: 1}, rl.Vector3{Y: 1})

	if d, ok := RayTriangle(rl.Vector3{Y: 0.5, Z: -3}, rl.Vector3{Z: 1}, &tri); !ok || !near(d, 3, 1e-6) {
		t.Errorf("front hit = %v, %v", d, ok)
	}
	// Two sided
	if d, ok := RayTriangle(rl.Vector3{Y: 0.5, Z: 3}, rl.Vector3{Z: -1}, &tri); !ok || !near(d, 3, 1e-6) {
		t.Errorf("back hit = %v, %v", d, ok)
	}
	if _, ok := RayTriangle(rl.Vector3{X: 2, Y: 0.5, Z: -3}, rl.Vector3{Z: 1}, &tri); ok {
		t.Error("ray beside the triangle should miss")
	}
	if _, ok := RayTriangle(rl.Vector3{Y: 0.5, Z: 3}, rl.Vector3{Z: 1}, &tri); ok {
		t.Error("triangle behind the origin should miss")
	}
	if _, ok := RayTriangle(rl.Vector3{Y: 0.5, Z: -3}, rl.Vector3{X: 1}, &tri); ok {
		t.Error("parallel ray should miss")
	}

	n := tri.FacingNormal(rl.Vector3{Z: 1})
	if n.Z >= 0 {
		t.Errorf("FacingNormal should oppose the ray, got %v", n)
	}
}

func TestMeshColliderBakesWorldTransform(t *testing.T) {
	g := engine.NewGameObject("ground")
	g.Transform.Position = rl.Vector3{Y: -3}
	g.Transform.Scale = rl.Vector3{X: 2, Y: 1, Z: 2}
	m := NewMeshCollider()
	g.AddComponent(m)
	m.BuildFromTriangles(PlaneTriangles(10, 10))

	b := m.GetBounds()
	if !near(b.Min.X, -10, 1e-5) || !near(b.Max.Z, 10, 1e-5) || !near(b.Min.Y, -3, 1e-5) {
		t.Errorf("world bounds = %+v", b)
	}
	if lb := m.LocalBounds(); !near(lb.Max.X, 5, 1e-5) {
		t.Errorf("local bounds = %+v", lb)
	}

	d, n, ok := m.Raycast(rl.Vector3{X: 8, Y: 5, Z: 8}, rl.Vector3{Y: -1}, 100)
	if !ok || !near(d, 8, 1e-5) || !near(n.Y, 1, 1e-5) {
		t.Errorf("raycast = %v %v %v", d, n, ok)
	}
	if _, _, ok := m.Raycast(rl.Vector3{X: 8, Y: 5, Z: 8}, rl.Vector3{Y: -1}, 7); ok {
		t.Error("hit beyond far should be rejected")
	}

	g.Transform.Position = rl.Vector3{Y: 1}
	m.Rebuild()
	if d, _, ok := m.Raycast(rl.Vector3{X: 1, Y: 5, Z: 2}, rl.Vector3{Y: -1}, 100); !ok || !near(d, 4, 1e-5) {
		t.Errorf("after Rebuild: %v %v", d, ok)
	}
}

func TestMeshColliderMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	point := func() rl.Vector3 {
		return rl.Vector3{X: rng.Float32()*20 - 10, Y: rng.Float32()*20 - 10, Z: rng.Float32()*20 - 10}
	}

	tris := make([]Triangle, 200)
	for i := range tris {
		c := point()
		tris[i] = NewTriangle(
			rl.Vector3Add(c, rl.Vector3Scale(point(), 0.1)),
			rl.Vector3Add(c, rl.Vector3Scale(point(), 0.1)),
			rl.Vector3Add(c, rl.Vector3Scale(point(), 0.1)),
		)
	}
	_, m := meshObject(rl.Vector3{}, tris)
	if m.TriangleCount() != len(tris) {
		t.Fatalf("TriangleCount() = %d", m.TriangleCount())
	}

	hits := 0
	for i := 0; i < 400; i++ {
		origin := rl.Vector3Scale(point(), 1.5)
		dir := rl.Vector3Normalize(rl.Vector3Subtract(point(), origin))

		want, wantOK := float32(100), false
		for j := range m.Triangles {
			if d, ok := RayTriangle(origin, dir, &m.Triangles[j]); ok && d <= want {
				want, wantOK = d, true
			}
		}
		got, _, gotOK := m.Raycast(origin, dir, 100)
		if gotOK != wantOK {
			t.Fatalf("ray %d: BVH hit=%v, brute force hit=%v", i, gotOK, wantOK)
		}
		if wantOK {
			hits++
			if !near(got, want, 1e-4) {
				t.Errorf("ray %d: distance %v, want %v", i, got, want)
			}
		}
	}
	if hits == 0 {
		t.Fatal("no ray hit the mesh")
	}
}

func TestUnbuiltMeshColliderMisses(t *testing.T) {
	m := NewMeshCollider()
	if _, _, ok := m.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 10); ok {
		t.Error("unbuilt mesh should never hit")
	}
	if m.IsBuilt() || m.GetBounds() != (AABB{}) {
		t.Error("unbuilt mesh has no bounds")
	}
	// Without an owner there is nothing to bake into
	m.Rebuild()
	if m.IsBuilt() {
		t.Error("Rebuild without a GameObject should be a no-op")
	}
}

func TestColliderWorldQueries(t *testing.T) {
	g := engine.NewGameObject("crate")
	g.Transform.Position = rl.Vector3{X: 1}
	g.Transform.Scale = rl.Vector3{X: -2, Y: 1, Z: 1}
	box := NewBoxCollider(rl.Vector3{X: 1, Y: 2, Z: 3})
	box.Offset = rl.Vector3{Y: 1}
	g.AddComponent(box)

	if s := box.GetWorldSize(); s != (rl.Vector3{X: 2, Y: 2, Z: 3}) {
		t.Errorf("GetWorldSize() = %v, want absolute scaled size", s)
	}
	if c := box.GetCenter(); c != (rl.Vector3{X: 1, Y: 1}) {
		t.Errorf("GetCenter() = %v", c)
	}

	capsule := NewCapsuleCollider(0.5, 2)
	g.AddComponent(capsule)
	a, b := capsule.Endpoints()
	if a != (rl.Vector3{X: 1, Y: -2}) || b != (rl.Vector3{X: 1, Y: 2}) {
		t.Errorf("Endpoints() = %v, %v", a, b)
	}
}
