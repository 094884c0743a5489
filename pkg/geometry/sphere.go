package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center  core.Point
	Radius  float64
	surface material.Surface
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64, surface material.Surface) *Sphere {
	return &Sphere{
		Center:  center,
		Radius:  radius,
		surface: surface,
	}
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (Hit, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= Epsilon {
		// Ray starts inside the sphere, or the entry is behind it
		root = (-halfB + sqrtD) / a
		if root <= Epsilon {
			return Hit{}, false
		}
	}

	normal := ray.At(root).Subtract(s.Center).Divide(s.Radius)
	return Hit{T: root, Normal: normal}, true
}

// Surface returns the sphere's material
func (s *Sphere) Surface() *material.Surface {
	return &s.surface
}

// BoundingSphere returns the sphere itself
func (s *Sphere) BoundingSphere() (BoundingSphere, bool) {
	return BoundingSphere{Center: s.Center, Radius: s.Radius}, true
}

func (s *Sphere) shape() {}
