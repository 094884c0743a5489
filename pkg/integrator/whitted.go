package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator implements recursive Whitted-style ray tracing with
// Blinn-Phong direct light and Fresnel-weighted reflection and refraction
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor traces the ray through the world
func (wi *WhittedIntegrator) RayColor(ray core.Ray, world *scene.World) core.Color {
	return world.Trace(ray)
}
