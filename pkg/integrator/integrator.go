package integrator

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for computing the color seen along a ray
type Integrator interface {
	// RayColor computes the color for a primary ray. Implementations must not
	// modify the world and must be safe for concurrent use.
	RayColor(ray core.Ray, world *scene.World) core.Color
}

// Names lists the integrators accepted by New
var Names = []string{"whitted", "normals", "depth"}

// New returns the integrator registered under name
func New(name string) (Integrator, error) {
	switch strings.ToLower(name) {
	case "", "whitted":
		return NewWhittedIntegrator(), nil
	case "normals":
		return NewNormalsIntegrator(), nil
	case "depth":
		return NewDepthIntegrator(DefaultMaxDistance), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q (available: %s)", name, strings.Join(Names, ", "))
	}
}
