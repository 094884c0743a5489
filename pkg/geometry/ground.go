package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Ground is the infinite plane z = 0 with its normal fixed to +z
type Ground struct {
	surface material.Surface
}

// NewGround creates a new ground plane
func NewGround(surface material.Surface) *Ground {
	return &Ground{surface: surface}
}

// Intersect tests if a ray intersects with the ground plane
func (g *Ground) Intersect(ray core.Ray) (Hit, bool) {
	// A ray parallel to the plane (including one lying in it) never hits
	if math.Abs(ray.Direction.Z) < 1e-8 {
		return Hit{}, false
	}

	t := -ray.Origin.Z / ray.Direction.Z
	if t <= Epsilon {
		return Hit{}, false
	}

	return Hit{T: t, Normal: core.NewVec3(0, 0, 1)}, true
}

// Surface returns the ground's material
func (g *Ground) Surface() *material.Surface {
	return &g.surface
}

// BoundingSphere reports false: the plane is unbounded
func (g *Ground) BoundingSphere() (BoundingSphere, bool) {
	return BoundingSphere{}, false
}

func (g *Ground) shape() {}
