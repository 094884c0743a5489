package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// WorldConfig contains the shading and capacity parameters of a World
type WorldConfig struct {
	MaxShapes          int        // Shape capacity, 0 for unbounded
	MaxLights          int        // Light capacity, 0 for unbounded
	Background         core.Color // Sky color; rays that escape return half of it
	Ambient            core.Color // Ambient light applied to every hit
	MaxTrace           int        // Deepest recursion level that still shades
	IndirectFraction   float64    // Constant energy added at non-specular secondary hits
	UseBoundingVolumes bool       // Reject rays with bounding spheres before exact tests
}

// DefaultWorldConfig returns the configuration of the reference scene
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		MaxShapes:          100,
		MaxLights:          3,
		Background:         core.NewColor(0.5294, 0.8078, 0.9215),
		Ambient:            core.NewColor(0.03, 0.03, 0.03),
		MaxTrace:           10,
		IndirectFraction:   0.1,
		UseBoundingVolumes: true,
	}
}

// World holds the shapes and lights of a scene. It is built once and is
// read-only while rendering, so it may be traced from many goroutines.
type World struct {
	config WorldConfig
	shapes []geometry.Shape
	lights []lights.PointLight
}

// Intersection is the closest hit of a ray against the world
type Intersection struct {
	Shape geometry.Shape
	geometry.Hit
}

// NewWorld creates an empty world
func NewWorld(config WorldConfig) *World {
	return &World{
		config: config,
		shapes: make([]geometry.Shape, 0, config.MaxShapes),
		lights: make([]lights.PointLight, 0, config.MaxLights),
	}
}

// WithConfig returns a world sharing this world's shapes and lights under a
// different configuration. Capacities are not re-checked.
func (w *World) WithConfig(config WorldConfig) *World {
	return &World{config: config, shapes: w.shapes, lights: w.lights}
}

// Config returns the world configuration
func (w *World) Config() WorldConfig {
	return w.config
}

// AddShape appends a shape, failing when the shape capacity is reached
func (w *World) AddShape(shape geometry.Shape) error {
	if w.config.MaxShapes > 0 && len(w.shapes) >= w.config.MaxShapes {
		return fmt.Errorf("adding shape %d: %w", len(w.shapes)+1, ErrCapacityExceeded)
	}
	w.shapes = append(w.shapes, shape)
	return nil
}

// AddLight appends a light, failing when the light capacity is reached
func (w *World) AddLight(light lights.PointLight) error {
	if w.config.MaxLights > 0 && len(w.lights) >= w.config.MaxLights {
		return fmt.Errorf("adding light %d: %w", len(w.lights)+1, ErrCapacityExceeded)
	}
	w.lights = append(w.lights, light)
	return nil
}

// AddShapes adds shapes in order, stopping at the first failure
func (w *World) AddShapes(shapes ...geometry.Shape) error {
	for _, shape := range shapes {
		if err := w.AddShape(shape); err != nil {
			return err
		}
	}
	return nil
}

// AddLights adds lights in order, stopping at the first failure
func (w *World) AddLights(pointLights ...lights.PointLight) error {
	for _, light := range pointLights {
		if err := w.AddLight(light); err != nil {
			return err
		}
	}
	return nil
}

// Shapes returns the shapes in insertion order
func (w *World) Shapes() []geometry.Shape {
	return w.shapes
}

// Lights returns the lights in insertion order
func (w *World) Lights() []lights.PointLight {
	return w.lights
}

// FirstIntersect finds the closest shape hit by the ray. Equal distances
// resolve to the shape added first.
func (w *World) FirstIntersect(ray core.Ray) (Intersection, bool) {
	var closest Intersection
	found := false
	best := math.Inf(1)

	for _, shape := range w.shapes {
		if w.config.UseBoundingVolumes {
			if bv, ok := shape.BoundingSphere(); ok && !bv.Hit(ray) {
				continue
			}
		}
		if hit, ok := shape.Intersect(ray); ok && hit.T < best {
			best = hit.T
			closest = Intersection{Shape: shape, Hit: hit}
			found = true
		}
	}

	return closest, found
}

// occluded reports whether anything blocks the segment from p toward a light
// at the given distance
func (w *World) occluded(p core.Point, direction core.Vec3, distance float64) bool {
	hit, ok := w.FirstIntersect(core.NewRay(p, direction))
	return ok && hit.T < distance
}

// DirectLight computes ambient plus Blinn-Phong diffuse and specular light
// from every unoccluded light at point p with normal n, seen along rayDir
func (w *World) DirectLight(p core.Point, n core.Vec3, surface *material.Surface, rayDir core.Vec3) core.Color {
	color := surface.K.MultiplyColor(w.config.Ambient)
	view := rayDir.Negate()

	for _, light := range w.lights {
		sample, ok := light.Sample(p)
		if !ok || w.occluded(p, sample.Direction, sample.Distance) {
			continue
		}

		diffuse := surface.K.Multiply(math.Max(0, sample.Direction.Dot(n)))

		specular := core.Color{}
		if half, ok := sample.Direction.Add(view).TryNormalize(); ok {
			specular = surface.N.Multiply(math.Pow(math.Max(0, half.Dot(n)), surface.Shininess))
		}

		color = color.Add(diffuse.Add(specular).MultiplyColor(sample.Emission))
	}

	return color
}

// Trace returns the color seen along a primary ray
func (w *World) Trace(ray core.Ray) core.Color {
	return w.trace(ray, 0, core.White(), false)
}

// trace shades the ray at recursion depth d. power is the fraction of the
// primary ray's energy still carried and inside tracks whether the ray
// travels within a refractive shape.
func (w *World) trace(ray core.Ray, d int, power core.Color, inside bool) core.Color {
	escaped := w.config.Background.Multiply(0.5)
	if d > w.config.MaxTrace {
		return escaped
	}

	hit, ok := w.FirstIntersect(ray)
	if !ok {
		return escaped
	}

	surface := hit.Shape.Surface()
	p := ray.At(hit.T)
	dir := ray.Direction.Normalize()

	color := w.DirectLight(p, hit.Normal, surface, dir)
	fresnel := surface.Fresnel(math.Abs(hit.Normal.Dot(dir)))

	if surface.Reflective {
		reflected := core.NewRay(p, material.Reflect(dir, hit.Normal))
		color = color.Add(fresnel.MultiplyColor(
			w.trace(reflected, d+1, power.MultiplyColor(fresnel), inside)))
	}

	if surface.Refractive {
		n := hit.Normal
		if n.Dot(dir) > 0 {
			n = n.Negate()
		}
		eta := surface.NAvg()
		if !inside {
			eta = 1 / eta
		}
		if refracted, ok := material.Refract(dir, n, eta); ok {
			transmitted := fresnel.Inverse()
			color = color.Add(transmitted.MultiplyColor(
				w.trace(core.NewRay(p, refracted), d+1, power.MultiplyColor(transmitted), !inside)))
		}
	}

	if !surface.Reflective && !surface.Refractive && d > 0 {
		color = color.Add(power.Multiply(w.config.IndirectFraction))
	}

	return color
}
