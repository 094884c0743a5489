package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewColor(r, g, blue)
}

// NewSphereGridScene creates a scene with a grid of rainbow metallic spheres
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	gridSize := 8

	defaultCameraConfig := geometry.CameraConfig{
		Eye:    core.NewPoint(-10, -10, 9),
		LookAt: core.NewPoint(0, 0, 1),
		Up:     core.NewVec3(0, 0, 1),
		Scale:  5,
	}

	config := DefaultWorldConfig()
	config.MaxShapes = gridSize*gridSize + 1
	config.MaxLights = 1
	config.MaxTrace = 4
	s := NewScene("sphere-grid", config, 640, 640, defaultCameraConfig, cameraOverrides...)

	if err := s.World.AddLight(lights.NewPointLight(core.NewPoint(-3, -6, 12), core.White(), 40)); err != nil {
		return nil, err
	}
	if err := s.World.AddShape(geometry.NewGround(material.WhiteDiffuse())); err != nil {
		return nil, err
	}

	// Fit the grid in a 9x9 area centered on the origin
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := spacing * 0.35

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0
			y := float64(j)*spacing - targetArea/2.0

			// Hue across x, chroma across y
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := 0.05 + (float64(j)/float64(gridSize-1))*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)
			tint := oklchToRGB(lightness, chroma, hue)

			// Absorption follows the tint; the index is silver-like
			surface := material.NewSurface(tint.Multiply(4), core.NewColor(0.15, 0.15, 0.15), 30, true, false)
			sphere := geometry.NewSphere(core.NewPoint(x, y, sphereRadius), sphereRadius, surface)
			if err := s.World.AddShape(sphere); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}
