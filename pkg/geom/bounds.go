// Package geom provides bounding volumes for mesh primitives.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoundingSphere is a center and radius.
type BoundingSphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Contains reports whether p lies inside or on the sphere.
func (s BoundingSphere) Contains(p mgl32.Vec3) bool {
	return p.Sub(s.Center).Len() <= s.Radius*(1+1e-5)
}

// BoundingBox is an axis-aligned box.
type BoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewBoundingBox returns the smallest box containing points.
// An empty point set yields the zero box.
func NewBoundingBox(points []mgl32.Vec3) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}

	inf := float32(math.Inf(1))
	b := BoundingBox{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
	for _, p := range points {
		for i := 0; i < 3; i++ {
			if p[i] < b.Min[i] {
				b.Min[i] = p[i]
			}
			if p[i] > b.Max[i] {
				b.Max[i] = p[i]
			}
		}
	}
	return b
}

// Center returns the box center.
func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents.
func (b BoundingBox) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b BoundingBox) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Sphere returns the sphere centered on the box that passes through its corners.
func (b BoundingBox) Sphere() BoundingSphere {
	return BoundingSphere{
		Center: b.Center(),
		Radius: b.Size().Len() * 0.5,
	}
}

// SphereFromPoints is NewBoundingBox(points).Sphere().
func SphereFromPoints(points []mgl32.Vec3) BoundingSphere {
	return NewBoundingBox(points).Sphere()
}
