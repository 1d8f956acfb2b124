package core

import (
	"fmt"
	"math"
)

// Color is an RGB radiance triple. Components are not clamped.
type Color struct {
	R, G, B float64
}

// Common colors
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Luminosity returns the mean of the brightest and the darkest channel
func (c Color) Luminosity() float64 {
	return (math.Max(c.R, math.Max(c.G, c.B)) + math.Min(c.R, math.Min(c.G, c.B))) / 2
}

// IsClose reports whether two colors are equal within Epsilon
func (c Color) IsClose(other Color) bool {
	return AreClose(c.R, other.R) && AreClose(c.G, other.G) && AreClose(c.B, other.B)
}

func (c Color) String() string {
	return fmt.Sprintf("Color(r=%g, g=%g, b=%g)", c.R, c.G, c.B)
}
