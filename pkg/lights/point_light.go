package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an omnidirectional light with inverse-square falloff
type PointLight struct {
	Position  core.Point
	Color     core.Color
	Intensity float64
}

// LightSample contains the light arriving at a shading point
type LightSample struct {
	Direction core.Vec3  // Unit direction from shading point to light
	Distance  float64    // Distance to light
	Emission  core.Color // Color scaled by the attenuated intensity
}

// NewPointLight creates a new point light
func NewPointLight(position core.Point, color core.Color, intensity float64) PointLight {
	return PointLight{Position: position, Color: color, Intensity: intensity}
}

// IntensityAt returns the intensity after falloff over the given distance.
// Distances below one unit are clamped so the light has no singularity.
func (l PointLight) IntensityAt(distance float64) float64 {
	if distance < 1 {
		return l.Intensity
	}
	return l.Intensity / (distance * distance)
}

// Sample evaluates the light toward point p. Returns false when p coincides
// with the light position.
func (l PointLight) Sample(p core.Point) (LightSample, bool) {
	toLight := l.Position.Subtract(p)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}, false
	}
	return LightSample{
		Direction: toLight.Divide(distance),
		Distance:  distance,
		Emission:  l.Color.Multiply(l.IntensityAt(distance)),
	}, true
}
