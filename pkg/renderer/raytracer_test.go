package renderer

import (
	"slices"
	"sync/atomic"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// testLogger discards output
type testLogger struct{}

func (tl *testLogger) Printf(format string, args ...interface{}) {}

// countingIntegrator returns a fixed color and counts calls
type countingIntegrator struct {
	calls atomic.Int64
}

func (ci *countingIntegrator) RayColor(ray core.Ray, world *scene.World) core.Color {
	ci.calls.Add(1)
	return core.NewColor(0.1, 0.2, 0.3)
}

func newTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.NewDefaultScene()
	if err != nil {
		t.Fatalf("NewDefaultScene() error: %v", err)
	}
	return s
}

func TestNewRaytracer_Defaults(t *testing.T) {
	s := newTestScene(t)
	rt := NewRaytracer(s, nil, DefaultRenderConfig(), &testLogger{})

	if rt.Buffer().Width != s.Width || rt.Buffer().Height != s.Height {
		t.Errorf("Expected scene resolution %dx%d, got %dx%d", s.Width, s.Height, rt.Buffer().Width, rt.Buffer().Height)
	}
	if _, ok := rt.integrator.(*integrator.WhittedIntegrator); !ok {
		t.Errorf("Expected Whitted integrator by default, got %T", rt.integrator)
	}

	config := DefaultRenderConfig()
	config.Width, config.Height = 32, 24
	rt = NewRaytracer(s, nil, config, &testLogger{})
	if rt.Buffer().Width != 32 || rt.Buffer().Height != 24 {
		t.Errorf("Expected 32x24 override, got %dx%d", rt.Buffer().Width, rt.Buffer().Height)
	}
}

func TestRaytracer_Render_EachPixelOnce(t *testing.T) {
	for _, workers := range []int{1, 3} {
		config := DefaultRenderConfig()
		config.Width, config.Height = 37, 23
		config.Workers = workers
		config.TileSize = 8

		counter := &countingIntegrator{}
		rt := NewRaytracer(newTestScene(t), counter, config, &testLogger{})
		stats := rt.Render()

		if got := counter.calls.Load(); got != 37*23 {
			t.Errorf("workers=%d: expected %d integrator calls, got %d", workers, 37*23, got)
		}
		if stats.TotalPixels != 37*23 {
			t.Errorf("workers=%d: expected %d pixels in stats, got %d", workers, 37*23, stats.TotalPixels)
		}
		for y := 0; y < 23; y++ {
			for x := 0; x < 37; x++ {
				if rt.Buffer().At(x, y) != core.NewColor(float64(float32(0.1)), float64(float32(0.2)), float64(float32(0.3))) {
					t.Fatalf("workers=%d: pixel (%d,%d) not written", workers, x, y)
				}
			}
		}
	}
}

func TestRaytracer_Render_Deterministic(t *testing.T) {
	config := DefaultRenderConfig()
	config.Width, config.Height = 60, 60

	rt := NewRaytracer(newTestScene(t), nil, config, &testLogger{})
	rt.Render()
	first := slices.Clone(rt.Buffer().Pix)
	rt.Render()

	if !slices.Equal(first, rt.Buffer().Pix) {
		t.Error("Expected rendering twice to produce identical buffers")
	}
}

func TestRaytracer_Render_ParallelMatchesSerial(t *testing.T) {
	config := DefaultRenderConfig()
	config.Width, config.Height = 60, 45

	serial := NewRaytracer(newTestScene(t), nil, config, &testLogger{})
	serial.Render()

	config.Workers = 4
	config.TileSize = 16
	parallel := NewRaytracer(newTestScene(t), nil, config, &testLogger{})
	stats := parallel.Render()

	if !slices.Equal(serial.Buffer().Pix, parallel.Buffer().Pix) {
		t.Error("Expected parallel render to match the serial render exactly")
	}
	if stats.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", stats.Workers)
	}
	if stats.Tiles != 4*3 {
		t.Errorf("Expected 12 tiles, got %d", stats.Tiles)
	}
}

func TestRaytracer_Render_ReferenceScene(t *testing.T) {
	config := DefaultRenderConfig()
	config.Width, config.Height = 40, 40

	s := newTestScene(t)
	rt := NewRaytracer(s, nil, config, &testLogger{})
	rt.Render()

	// The top rows look over the ground plane into the sky
	background := s.World.Config().Background.Multiply(0.5)
	sky := rt.Buffer().At(0, 39)
	if sky != core.NewColor(float64(float32(background.R)), float64(float32(background.G)), float64(float32(background.B))) {
		t.Errorf("Expected damped background %v in the top-left corner, got %v", background, sky)
	}

	img := rt.Image()
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 40 {
		t.Errorf("Expected a 40x40 image, got %v", img.Bounds())
	}
	if lum := CalculateAverageLuminance(img); lum <= 0 || lum >= 1 {
		t.Errorf("Expected a partially lit image, got average luminance %f", lum)
	}
}
