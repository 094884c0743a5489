package scene

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func TestNewDefaultScene(t *testing.T) {
	s, err := NewDefaultScene()
	if err != nil {
		t.Fatalf("NewDefaultScene() error: %v", err)
	}

	if got := len(s.World.Shapes()); got != 6 {
		t.Errorf("Expected 6 shapes, got %d", got)
	}
	if got := len(s.World.Lights()); got != 3 {
		t.Errorf("Expected 3 lights, got %d", got)
	}
	if s.Width != 600 || s.Height != 600 {
		t.Errorf("Expected 600x600, got %dx%d", s.Width, s.Height)
	}
	if _, ok := s.World.Shapes()[0].(*geometry.Ground); !ok {
		t.Error("Expected the ground to be the first shape")
	}

	config := s.World.Config()
	if config.MaxTrace != 10 || config.MaxShapes != 100 || config.MaxLights != 3 {
		t.Errorf("Unexpected world config %+v", config)
	}
	if s.CameraConfig.Eye != core.NewPoint(-20, -20, 7) || s.CameraConfig.Scale != 3 {
		t.Errorf("Unexpected camera config %+v", s.CameraConfig)
	}
}

func TestNewDefaultScene_CameraOverride(t *testing.T) {
	s, err := NewDefaultScene(geometry.CameraConfig{Scale: 1.5})
	if err != nil {
		t.Fatal(err)
	}

	if s.CameraConfig.Scale != 1.5 {
		t.Errorf("Expected overridden scale 1.5, got %f", s.CameraConfig.Scale)
	}
	if s.CameraConfig.LookAt != core.NewPoint(-7.1, -7.1, 4.5) {
		t.Errorf("Expected default look-at to survive the override, got %v", s.CameraConfig.LookAt)
	}
	if s.Camera.Config() != s.CameraConfig {
		t.Error("Expected the camera to be built from the merged config")
	}
}

func TestNewBuiltinScene(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltinScene(info.ID)
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) error: %v", info.ID, err)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Expected shapes in the scene")
			}
			if len(s.World.Lights()) == 0 {
				t.Error("Expected lights in the scene")
			}
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Expected a positive resolution, got %dx%d", s.Width, s.Height)
			}
		})
	}

	if _, err := NewBuiltinScene("no-such-scene"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestNewSphereGridScene_FillsCapacity(t *testing.T) {
	s, err := NewSphereGridScene()
	if err != nil {
		t.Fatal(err)
	}

	config := s.World.Config()
	if got := len(s.World.Shapes()); got != config.MaxShapes {
		t.Errorf("Expected the grid to fill capacity %d, got %d shapes", config.MaxShapes, got)
	}
}

func TestScene_SetCamera(t *testing.T) {
	s, err := NewDefaultScene()
	if err != nil {
		t.Fatal(err)
	}

	config := geometry.CameraConfig{
		Eye:    core.NewPoint(0, -10, 3),
		LookAt: core.NewPoint(0, 0, 1),
		Up:     core.NewVec3(0, 0, 1),
		Scale:  2,
	}
	s.SetCamera(config)

	expected := config.LookAt.Subtract(config.Eye).Normalize()
	if s.Camera.GetCameraForward() != expected {
		t.Errorf("Expected forward %v, got %v", expected, s.Camera.GetCameraForward())
	}
}
