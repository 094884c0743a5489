package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCylinderTestScene creates a simple test scene with cylinders
func NewCylinderTestScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Eye:    core.NewPoint(-12, -14, 6),
		LookAt: core.NewPoint(-3, -4, 2.5),
		Up:     core.NewVec3(0, 0, 1),
		Scale:  4,
	}

	config := DefaultWorldConfig()
	config.MaxLights = 2
	s := NewScene("cylinders", config, 600, 450, defaultCameraConfig, cameraOverrides...)

	err := s.World.AddLights(
		lights.NewPointLight(core.NewPoint(2, -3, 9), core.NewColor(1, 0.95, 0.9), 20),
		lights.NewPointLight(core.NewPoint(-4, 4, 7), core.NewColor(0.6, 0.7, 1), 12),
	)
	if err != nil {
		return nil, err
	}

	// A red matte surface for the standing column
	red := material.NewSurface(core.NewColor(4, 0.8, 0.8), core.Color{}, 10, false, false)

	err = s.World.AddShapes(
		geometry.NewGround(material.WhiteDiffuse()),

		// Standing column, open at the top
		geometry.NewCylinder(core.NewPoint(2, 2, 0), core.NewVec3(0, 0, 1), 0.8, 3, red),

		// Gold tube lying on the ground along x
		geometry.NewCylinder(core.NewPoint(-1.5, 0, 0.6), core.NewVec3(1, 0, 0), 0.6, 3, material.Gold()),

		// Flattened glass column
		geometry.NewEllipticCylinder(core.NewPoint(0, 3.5, 0), core.NewVec3(0, 0, 1), 0.9, 0.4, 2, material.Glass()),

		// Tilted silver rod
		geometry.NewCylinder(core.NewPoint(3.5, -1, 0), core.NewVec3(-1, 1, 2), 0.3, 4, material.Silver()),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}
