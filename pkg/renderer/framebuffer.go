package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// FrameBuffer is a row-major RGB float32 pixel buffer. Row 0 is the bottom
// of the image, matching the layout expected by glDrawPixels.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []float32 // 3 values per pixel
}

// NewFrameBuffer creates a black buffer of the given size
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*3),
	}
}

func (fb *FrameBuffer) offset(x, y int) int {
	return (y*fb.Width + x) * 3
}

// Set stores the color of pixel (x, y)
func (fb *FrameBuffer) Set(x, y int, c core.Color) {
	i := fb.offset(x, y)
	fb.Pix[i] = float32(c.R)
	fb.Pix[i+1] = float32(c.G)
	fb.Pix[i+2] = float32(c.B)
}

// At returns the color of pixel (x, y)
func (fb *FrameBuffer) At(x, y int) core.Color {
	i := fb.offset(x, y)
	return core.NewColor(float64(fb.Pix[i]), float64(fb.Pix[i+1]), float64(fb.Pix[i+2]))
}

// Clear resets every pixel to black
func (fb *FrameBuffer) Clear() {
	clear(fb.Pix)
}

// encodeChannel clamps a linear channel to [0, 1], applies gamma and
// quantizes to 8 bits. NaN maps to 0.
func encodeChannel(v, invGamma float32) uint8 {
	if math32.IsNaN(v) {
		return 0
	}
	v = math32.Max(0, math32.Min(1, v))
	if invGamma != 1 {
		v = math32.Pow(v, invGamma)
	}
	return uint8(math32.Round(v * 255))
}

// ToRGBA converts the buffer to a top-down 8-bit image. A gamma of 1 (or
// less than or equal to 0) writes linear values.
func (fb *FrameBuffer) ToRGBA(gamma float64) *image.RGBA {
	invGamma := float32(1)
	if gamma > 0 {
		invGamma = 1 / float32(gamma)
	}

	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		row := fb.Height - 1 - y
		for x := 0; x < fb.Width; x++ {
			i := fb.offset(x, y)
			img.SetRGBA(x, row, color.RGBA{
				R: encodeChannel(fb.Pix[i], invGamma),
				G: encodeChannel(fb.Pix[i+1], invGamma),
				B: encodeChannel(fb.Pix[i+2], invGamma),
				A: 255,
			})
		}
	}
	return img
}
