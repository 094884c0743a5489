package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the reference scene: four metal and glass spheres
// and a small white sphere over a white ground, lit by red, green and blue
// point lights
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Eye:    core.NewPoint(-20, -20, 7),
		LookAt: core.NewPoint(-7.1, -7.1, 4.5),
		Up:     core.NewVec3(0, 0, 1),
		Scale:  3,
	}

	s := NewScene("default", DefaultWorldConfig(), 600, 600, defaultCameraConfig, cameraOverrides...)

	err := s.World.AddLights(
		lights.NewPointLight(core.NewPoint(1, 5, 10), core.NewColor(1, 0, 0), 15),
		lights.NewPointLight(core.NewPoint(3, 3, 10), core.NewColor(0, 1, 0), 15),
		lights.NewPointLight(core.NewPoint(5, 1, 10), core.NewColor(0, 0, 1), 15),
	)
	if err != nil {
		return nil, err
	}

	err = s.World.AddShapes(
		geometry.NewGround(material.WhiteDiffuse()),
		geometry.NewSphere(core.NewPoint(4, 1, 2.4), 1, material.Gold()),
		geometry.NewSphere(core.NewPoint(1, 1, 2.4), 1, material.Glass()),
		geometry.NewSphere(core.NewPoint(1, 4, 2.4), 1, material.Silver()),
		geometry.NewSphere(core.NewPoint(4, 4, 2.4), 1, material.Silver()),
		geometry.NewSphere(core.NewPoint(2.4, 2.4, 5.4), 0.5, material.WhiteDiffuse()),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}
