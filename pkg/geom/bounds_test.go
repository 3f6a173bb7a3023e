package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewBoundingBox(t *testing.T) {
	points := []mgl32.Vec3{
		{1, 2, 3},
		{-1, 5, 0},
		{4, -2, 1},
	}

	b := NewBoundingBox(points)
	if b.Min != (mgl32.Vec3{-1, -2, 0}) {
		t.Errorf("min = %v", b.Min)
	}
	if b.Max != (mgl32.Vec3{4, 5, 3}) {
		t.Errorf("max = %v", b.Max)
	}
	for _, p := range points {
		if !b.Contains(p) {
			t.Errorf("box does not contain %v", p)
		}
	}
}

func TestNewBoundingBox_Empty(t *testing.T) {
	if b := NewBoundingBox(nil); b != (BoundingBox{}) {
		t.Errorf("empty box = %+v, want zero", b)
	}
}

func TestBoundingBox_Sphere(t *testing.T) {
	b := BoundingBox{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	s := b.Sphere()

	if s.Center != (mgl32.Vec3{}) {
		t.Errorf("center = %v, want origin", s.Center)
	}
	if !mgl32.FloatEqual(s.Radius, float32(1.7320508)) {
		t.Errorf("radius = %f, want sqrt(3)", s.Radius)
	}
	if !s.Contains(mgl32.Vec3{1, 1, 1}) {
		t.Error("sphere does not contain box corner")
	}
	if s.Contains(mgl32.Vec3{2, 0, 0}) {
		t.Error("sphere contains outside point")
	}
}

func TestSphereFromPoints(t *testing.T) {
	points := []mgl32.Vec3{{0, 0, 0}, {2, 0, 0}}
	s := SphereFromPoints(points)

	if s.Center != (mgl32.Vec3{1, 0, 0}) || s.Radius != 1 {
		t.Errorf("sphere = %+v", s)
	}
}
