package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Eye    core.Point // Center of projection
	LookAt core.Point // Center of the image plane
	Up     core.Vec3  // World up direction
	Scale  float64    // Half-extent of the image plane in world units
}

// Camera is a pinhole camera whose image plane passes through LookAt.
// Primary rays start on the image plane and point away from the eye.
type Camera struct {
	config  CameraConfig
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3
	toWorld core.Mat4 // Image plane coordinates to world
}

// NewCamera creates a camera from the configuration
func NewCamera(config CameraConfig) *Camera {
	forward := config.LookAt.Subtract(config.Eye).Normalize()
	right := forward.Cross(config.Up).Normalize()
	up := right.Cross(forward).Normalize()

	return &Camera{
		config:  config,
		forward: forward,
		right:   right,
		up:      up,
		toWorld: core.NewBasis(right, up, forward, config.LookAt),
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Eye != (core.Point{}) {
		result.Eye = override.Eye
	}
	if override.LookAt != (core.Point{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Scale != 0 {
		result.Scale = override.Scale
	}
	return result
}

// GetRay generates the primary ray for pixel (x, y) of a width x height
// image, with y growing upward
func (c *Camera) GetRay(x, y, width, height int) core.Ray {
	// Map the pixel to [-1, 1) on both image plane axes
	sx := 2*float64(x)/float64(width) - 1
	sy := 2*float64(y)/float64(height) - 1

	pixel := c.toWorld.TransformPoint(core.NewPoint(sx*c.config.Scale, sy*c.config.Scale, 0))
	return core.NewRay(pixel, pixel.Subtract(c.config.Eye).Normalize())
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
