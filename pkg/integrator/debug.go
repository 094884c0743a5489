package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultMaxDistance is the distance that maps to black in the depth view
const DefaultMaxDistance = 50.0

// NormalsIntegrator colors each pixel by the surface normal of the first hit,
// mapping each component from [-1, 1] to [0, 1]. Misses are black.
type NormalsIntegrator struct{}

// NewNormalsIntegrator creates a new normals integrator
func NewNormalsIntegrator() *NormalsIntegrator {
	return &NormalsIntegrator{}
}

// RayColor returns the normal of the first hit as a color
func (ni *NormalsIntegrator) RayColor(ray core.Ray, world *scene.World) core.Color {
	hit, ok := world.FirstIntersect(ray)
	if !ok {
		return core.Color{}
	}
	n := hit.Normal
	return core.NewColor((n.X+1)/2, (n.Y+1)/2, (n.Z+1)/2)
}

// DepthIntegrator shades the first hit by its distance: white at the ray
// origin fading linearly to black at MaxDistance
type DepthIntegrator struct {
	MaxDistance float64
}

// NewDepthIntegrator creates a new depth integrator
func NewDepthIntegrator(maxDistance float64) *DepthIntegrator {
	return &DepthIntegrator{MaxDistance: maxDistance}
}

// RayColor returns a gray level for the hit distance
func (di *DepthIntegrator) RayColor(ray core.Ray, world *scene.World) core.Color {
	hit, ok := world.FirstIntersect(ray)
	if !ok || di.MaxDistance <= 0 {
		return core.Color{}
	}
	distance := hit.T * ray.Direction.Length()
	gray := math.Max(0, 1-distance/di.MaxDistance)
	return core.NewColor(gray, gray, gray)
}
