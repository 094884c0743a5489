package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width    int     // Image width, 0 to use the scene's
	Height   int     // Image height, 0 to use the scene's
	Workers  int     // Goroutines used by Render; 1 renders serially, 0 uses every CPU
	TileSize int     // Tile edge length for parallel rendering
	Gamma    float64 // Display gamma applied by Image
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Workers:  1,
		TileSize: 64,
		Gamma:    2.2,
	}
}

// Raytracer owns everything a render needs: the world, the camera, the
// integrator and the frame buffer it fills
type Raytracer struct {
	world      *scene.World
	camera     *geometry.Camera
	integrator integrator.Integrator
	buffer     *FrameBuffer
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer for the scene. A nil integrator selects
// Whitted tracing and a nil logger selects the default stdout logger.
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, config RenderConfig, logger core.Logger) *Raytracer {
	if config.Width <= 0 {
		config.Width = s.Width
	}
	if config.Height <= 0 {
		config.Height = s.Height
	}
	if integ == nil {
		integ = integrator.NewWhittedIntegrator()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		world:      s.World,
		camera:     s.Camera,
		integrator: integ,
		buffer:     NewFrameBuffer(config.Width, config.Height),
		config:     config,
		logger:     logger,
	}
}

// Buffer returns the frame buffer filled by Render
func (rt *Raytracer) Buffer() *FrameBuffer {
	return rt.buffer
}

// Config returns the effective render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Image returns the rendered buffer as a gamma-encoded top-down image
func (rt *Raytracer) Image() *image.RGBA {
	return rt.buffer.ToRGBA(rt.config.Gamma)
}

// Render computes every pixel of the frame buffer once, serially or with a
// worker pool depending on RenderConfig.Workers
func (rt *Raytracer) Render() RenderStats {
	start := time.Now()
	width, height := rt.buffer.Width, rt.buffer.Height

	var stats RenderStats
	if rt.config.Workers == 1 {
		stats = rt.renderSerial()
	} else {
		stats = rt.renderParallel()
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Rendered %dx%d (%d pixels, %d tiles, %d workers) in %v\n",
		width, height, stats.TotalPixels, stats.Tiles, stats.Workers, stats.Duration)
	return stats
}

// renderSerial walks pixels in buffer order
func (rt *Raytracer) renderSerial() RenderStats {
	width, height := rt.buffer.Width, rt.buffer.Height
	for i := 0; i < width*height; i++ {
		rt.renderPixel(i%width, i/width)
	}
	return RenderStats{TotalPixels: width * height, Tiles: 1, Workers: 1}
}

// renderParallel distributes tiles over the worker pool
func (rt *Raytracer) renderParallel() RenderStats {
	tiles := NewTileGrid(rt.buffer.Width, rt.buffer.Height, rt.config.TileSize)
	pool := NewWorkerPool(rt, len(tiles), rt.config.Workers)
	pool.Start()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Add(result.Stats)
	}
	pool.Stop()

	return stats
}

// RenderBounds renders the pixels inside bounds into the frame buffer
func (rt *Raytracer) RenderBounds(bounds image.Rectangle) RenderStats {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rt.renderPixel(x, y)
		}
	}
	return RenderStats{TotalPixels: bounds.Dx() * bounds.Dy(), Tiles: 1}
}

func (rt *Raytracer) renderPixel(x, y int) {
	ray := rt.camera.GetRay(x, y, rt.buffer.Width, rt.buffer.Height)
	rt.buffer.Set(x, y, rt.integrator.RayColor(ray, rt.world))
}
