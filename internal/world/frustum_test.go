package world

import (
	"testing"

	"orbit3d/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func testCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.Vector3{Z: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)

	tests := []struct {
		name  string
		point rl.Vector3
		want  bool
	}{
		{"target", rl.Vector3{}, true},
		{"behind", rl.Vector3{Z: 20}, false},
		{"far left", rl.Vector3{X: -100}, false},
		{"above", rl.Vector3{Y: 100}, false},
		{"beyond far plane", rl.Vector3{Z: -2000}, false},
		{"inside near edge", rl.Vector3{X: 1, Z: 5}, true},
	}
	for _, tt := range tests {
		if got := f.ContainsPoint(tt.point); got != tt.want {
			t.Errorf("%s: ContainsPoint(%v) = %v, want %v", tt.name, tt.point, got, tt.want)
		}
	}
}

func TestFrustumSphereAndBox(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)

	// Center outside the left plane, but the radius reaches in
	edge := rl.Vector3{X: -8}
	if f.ContainsPoint(edge) {
		t.Fatal("test point should be outside")
	}
	if !f.ContainsSphere(edge, 5) {
		t.Error("overlapping sphere should be kept")
	}
	if f.ContainsSphere(rl.Vector3{X: -100}, 1) {
		t.Error("distant sphere should be culled")
	}

	if !f.ContainsAABB(components.NewAABBFromCenter(edge, rl.Vector3{X: 5, Y: 5, Z: 5})) {
		t.Error("overlapping box should be kept")
	}
	if f.ContainsAABB(components.NewAABBFromCenter(rl.Vector3{Z: 30}, rl.Vector3{X: 1, Y: 1, Z: 1})) {
		t.Error("box behind the camera should be culled")
	}
}

func TestFrustumOrthographic(t *testing.T) {
	cam := testCamera()
	cam.Projection = rl.CameraOrthographic
	cam.Fovy = 10
	f := ExtractFrustum(cam, 1)

	if !f.ContainsPoint(rl.Vector3{X: 4}) {
		t.Error("point inside the ortho box should be kept")
	}
	if f.ContainsPoint(rl.Vector3{X: 6}) {
		t.Error("point outside the ortho half width should be culled")
	}
}
