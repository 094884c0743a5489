package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageData contains loaded image data as a row-major color array, top row first
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Color
}

// ImageDiff summarizes per-channel differences between two images
type ImageDiff struct {
	MaxDiff         float64 // Largest absolute channel difference in [0, 1]
	MeanDiff        float64 // Mean absolute channel difference in [0, 1]
	DifferentPixels int     // Pixels with any channel differing by more than the tolerance
}

// LoadImage loads a PNG or JPEG image and converts it to a color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return NewImageData(img), nil
}

// NewImageData converts any image to a color array
func NewImageData(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// CompareImages reports how far a rendered image is from a reference.
// Pixels count as different when any channel differs by more than tolerance.
func CompareImages(rendered, reference *ImageData, tolerance float64) (ImageDiff, error) {
	if rendered.Width != reference.Width || rendered.Height != reference.Height {
		return ImageDiff{}, fmt.Errorf("image size mismatch: %dx%d vs %dx%d",
			rendered.Width, rendered.Height, reference.Width, reference.Height)
	}

	var diff ImageDiff
	if len(rendered.Pixels) == 0 {
		return diff, nil
	}

	total := 0.0
	for i, a := range rendered.Pixels {
		b := reference.Pixels[i]
		pixelMax := math.Max(math.Abs(a.R-b.R), math.Max(math.Abs(a.G-b.G), math.Abs(a.B-b.B)))
		total += math.Abs(a.R-b.R) + math.Abs(a.G-b.G) + math.Abs(a.B-b.B)

		diff.MaxDiff = math.Max(diff.MaxDiff, pixelMax)
		if pixelMax > tolerance {
			diff.DifferentPixels++
		}
	}
	diff.MeanDiff = total / float64(3*len(rendered.Pixels))

	return diff, nil
}
