package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *World
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Width        int // Image width in pixels
	Height       int // Image height in pixels
}

// NewScene creates a scene around an empty world. The camera is built from
// the default configuration with any overrides applied.
func NewScene(name string, config WorldConfig, width, height int, defaultCamera geometry.CameraConfig, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := defaultCamera
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCamera, cameraOverrides[0])
	}

	return &Scene{
		Name:         name,
		World:        NewWorld(config),
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Width:        width,
		Height:       height,
	}
}

// SetCamera replaces the camera configuration
func (s *Scene) SetCamera(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.World.Shapes())
}
