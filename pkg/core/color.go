package core

// Color is an RGB triple. Arithmetic is component-wise and never clamps.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// White returns (1, 1, 1)
func White() Color {
	return Color{1, 1, 1}
}

// Add returns the component-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the component-wise difference
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply scales every component
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise product
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// DivideColor returns the component-wise quotient
func (c Color) DivideColor(other Color) Color {
	return Color{c.R / other.R, c.G / other.G, c.B / other.B}
}

// AddScalar adds a constant to every component
func (c Color) AddScalar(a float64) Color {
	return Color{c.R + a, c.G + a, c.B + a}
}

// SubtractScalar subtracts a constant from every component
func (c Color) SubtractScalar(a float64) Color {
	return Color{c.R - a, c.G - a, c.B - a}
}

// Inverse returns 1 - component for every channel
func (c Color) Inverse() Color {
	return Color{1 - c.R, 1 - c.G, 1 - c.B}
}

// Luminance returns the perceptual luminance of the color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// IsBlack reports whether every component is zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}
