package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	Tiles       int           // Number of tiles rendered
	Workers     int           // Number of goroutines used
	Duration    time.Duration // Wall-clock render time
}

// Add merges the pixel and tile counts of another tile's stats
func (rs *RenderStats) Add(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.Tiles += other.Tiles
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image
// in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(pixels)
}
