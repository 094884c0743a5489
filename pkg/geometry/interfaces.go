package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Epsilon is the minimum ray parameter accepted as a hit. It keeps shadow,
// reflection and refraction rays from re-hitting the surface they start on.
const Epsilon = 0.01

// Hit contains information about a ray-shape intersection
type Hit struct {
	T      float64   // Parameter t along the ray
	Normal core.Vec3 // Unit outward surface normal
}

// Shape is the closed set of primitives a World can hold: *Sphere, *Ground
// and *Cylinder.
type Shape interface {
	// Intersect returns the nearest hit with t > Epsilon
	Intersect(ray core.Ray) (Hit, bool)

	// Surface returns the material owned by the shape
	Surface() *material.Surface

	// BoundingSphere returns a cheap rejection volume, or false for unbounded shapes
	BoundingSphere() (BoundingSphere, bool)

	shape()
}

// BoundingSphere is an enclosing sphere used to reject rays early
type BoundingSphere struct {
	Center core.Point
	Radius float64
}

// Hit reports whether the ray passes within Radius of Center ahead of its origin
func (b BoundingSphere) Hit(ray core.Ray) bool {
	lengthSq := ray.Direction.LengthSquared()
	if lengthSq == 0 {
		return false
	}
	// Parameter of the closest approach to the center, clamped to the ray start
	t := b.Center.Subtract(ray.Origin).Dot(ray.Direction) / lengthSq
	if t < 0 {
		t = 0
	}
	return ray.At(t).Distance(b.Center) <= b.Radius
}
