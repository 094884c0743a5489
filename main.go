package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds all command line configuration
type Config struct {
	SceneType  string
	Width      int
	Height     int
	MaxTrace   int
	Workers    int
	TileSize   int
	Integrator string
	Scale      float64
	Gamma      float64
	Reference  string
	Tolerance  float64
	Help       bool
}

func main() {
	config := parseFlags()

	if config.Help {
		showHelp()
		return
	}

	fmt.Println("Starting Whitted Raytracer...")

	if err := run(config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line flags and returns configuration
func parseFlags() Config {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Built-in scene ID, scene file name in ./scenes, or path to a .wrt file")
	flag.IntVar(&config.Width, "width", 0, "Image width (0 uses the scene's resolution)")
	flag.IntVar(&config.Height, "height", 0, "Image height (0 uses the scene's resolution)")
	flag.IntVar(&config.MaxTrace, "maxtrace", -1, "Recursion limit (-1 uses the scene's)")
	flag.IntVar(&config.Workers, "workers", 0, "Number of render goroutines (0 = every CPU, 1 = serial)")
	flag.IntVar(&config.TileSize, "tilesize", 64, "Tile edge length for parallel rendering")
	flag.StringVar(&config.Integrator, "integrator", "whitted", "Integrator: "+strings.Join(integrator.Names, ", "))
	flag.Float64Var(&config.Scale, "scale", 0, "Camera scale override (0 keeps the scene's)")
	flag.Float64Var(&config.Gamma, "gamma", 2.2, "Display gamma")
	flag.StringVar(&config.Reference, "reference", "", "Reference image to compare the render against")
	flag.Float64Var(&config.Tolerance, "tolerance", 2.0/255, "Per-channel tolerance used with -reference")
	flag.BoolVar(&config.Help, "help", false, "Show help information")
	flag.Parse()
	return config
}

// showHelp displays help information
func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Printf("  %-12s - %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListSceneFiles(scene.FindScenesDir()); err == nil {
		for _, info := range files {
			fmt.Printf("  %-12s - %s\n", strings.TrimPrefix(info.ID, "file:"), info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// run renders the configured scene and writes the result
func run(config Config) error {
	var overrides []geometry.CameraConfig
	if config.Scale > 0 {
		overrides = append(overrides, geometry.CameraConfig{Scale: config.Scale})
	}

	sceneObj, err := createScene(config.SceneType, overrides...)
	if err != nil {
		return err
	}
	if config.MaxTrace >= 0 {
		worldConfig := sceneObj.World.Config()
		worldConfig.MaxTrace = config.MaxTrace
		sceneObj.World = sceneObj.World.WithConfig(worldConfig)
	}
	fmt.Printf("Using %s (%d shapes, %d lights)\n",
		sceneObj.Name, sceneObj.GetPrimitiveCount(), len(sceneObj.World.Lights()))

	integ, err := integrator.New(config.Integrator)
	if err != nil {
		return err
	}

	outputDir := createOutputDir(config.SceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.Width = config.Width
	renderConfig.Height = config.Height
	renderConfig.Workers = config.Workers
	renderConfig.TileSize = config.TileSize
	renderConfig.Gamma = config.Gamma

	raytracer := renderer.NewRaytracer(sceneObj, integ, renderConfig, nil)
	stats := raytracer.Render()
	img := raytracer.Image()

	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Average luminance: %.4f\n", renderer.CalculateAverageLuminance(img))

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	if err := gg.SavePNG(filename, img); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	fmt.Printf("Render saved as %s\n", filename)

	if config.Reference != "" {
		comparison := filepath.Join(outputDir, fmt.Sprintf("compare_%s.png", timestamp))
		return compareWithReference(img, config.Reference, config.Tolerance, comparison)
	}
	return nil
}

// createScene resolves a scene argument: a path to a scene file, a built-in
// scene ID, or the name of a file in the scenes directory
func createScene(sceneType string, cameraOverrides ...geometry.CameraConfig) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if strings.HasSuffix(sceneType, scene.SceneFileExt) {
		return loaders.LoadScene(sceneType, cameraOverrides...)
	}
	if s, err := scene.NewBuiltinScene(sceneType, cameraOverrides...); err == nil {
		return s, nil
	}
	if path := findSceneFile(sceneType); path != "" {
		return loaders.LoadScene(path, cameraOverrides...)
	}
	return nil, fmt.Errorf("unknown scene %q", sceneType)
}

// findSceneFile returns the path of <name>.wrt in the scenes directory, or ""
func findSceneFile(name string) string {
	dir := scene.FindScenesDir()
	if dir == "" || strings.ContainsAny(name, `/\`) {
		return ""
	}
	path := filepath.Join(dir, name+scene.SceneFileExt)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// createOutputDir returns the output directory for a scene argument. Scene
// file paths use the file's base name.
func createOutputDir(sceneType string) string {
	name := strings.TrimSuffix(filepath.Base(sceneType), scene.SceneFileExt)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "scene"
	}
	return filepath.Join("output", name)
}

// compareWithReference reports the difference between a render and a
// reference image and writes the two side by side
func compareWithReference(img image.Image, referencePath string, tolerance float64, comparisonPath string) error {
	reference, err := loaders.LoadImage(referencePath)
	if err != nil {
		return fmt.Errorf("loading reference: %w", err)
	}

	diff, err := loaders.CompareImages(loaders.NewImageData(img), reference, tolerance)
	if err != nil {
		return fmt.Errorf("comparing with reference: %w", err)
	}
	fmt.Printf("Reference comparison: max diff %.4f, mean diff %.5f, %d pixels beyond tolerance\n",
		diff.MaxDiff, diff.MeanDiff, diff.DifferentPixels)

	referenceImg, err := gg.LoadImage(referencePath)
	if err != nil {
		return fmt.Errorf("loading reference: %w", err)
	}
	if err := sideBySide(img, referenceImg).SavePNG(comparisonPath); err != nil {
		return fmt.Errorf("saving comparison: %w", err)
	}
	fmt.Printf("Comparison saved as %s\n", comparisonPath)
	return nil
}

// sideBySide draws the render on the left and the reference on the right
func sideBySide(rendered, reference image.Image) *gg.Context {
	w := rendered.Bounds().Dx()
	h := rendered.Bounds().Dy()
	dc := gg.NewContext(2*w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.DrawImage(rendered, 0, 0)
	dc.DrawImage(reference, w, 0)
	return dc
}
