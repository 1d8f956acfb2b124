package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Pigment associates a color with each point (u, v) of a parametric surface
type Pigment interface {
	Color(uv core.Vec2) core.Color
}

// UniformPigment has the same color over the whole surface
type UniformPigment struct {
	C core.Color
}

// NewUniformPigment creates a new uniform pigment
func NewUniformPigment(c core.Color) *UniformPigment {
	return &UniformPigment{C: c}
}

// Color returns the uniform color regardless of uv
func (p *UniformPigment) Color(uv core.Vec2) core.Color {
	return p.C
}

// CheckeredPigment alternates two colors on a NumOfSteps x NumOfSteps grid
type CheckeredPigment struct {
	Color1     core.Color
	Color2     core.Color
	NumOfSteps int
}

// NewCheckeredPigment creates a new checkered pigment
func NewCheckeredPigment(color1, color2 core.Color, numOfSteps int) *CheckeredPigment {
	return &CheckeredPigment{Color1: color1, Color2: color2, NumOfSteps: numOfSteps}
}

// Color returns Color1 on cells where floor(u*n)+floor(v*n) is even, Color2 otherwise
func (p *CheckeredPigment) Color(uv core.Vec2) core.Color {
	n := float64(p.NumOfSteps)
	intU := int(math.Floor(uv.U * n))
	intV := int(math.Floor(uv.V * n))

	if (intU+intV)%2 == 0 {
		return p.Color1
	}
	return p.Color2
}

// ImagePigment looks up the nearest pixel of an HDR image
type ImagePigment struct {
	Image *core.HdrImage
}

// NewImagePigment creates a new image pigment
func NewImagePigment(image *core.HdrImage) *ImagePigment {
	return &ImagePigment{Image: image}
}

// Color samples the image using nearest-neighbor filtering.
// Out-of-range coordinates are clamped to the border, not wrapped.
func (p *ImagePigment) Color(uv core.Vec2) core.Color {
	col := int(uv.U * float64(p.Image.Width))
	row := int(uv.V * float64(p.Image.Height))

	col = max(0, min(p.Image.Width-1, col))
	row = max(0, min(p.Image.Height-1, row))

	return p.Image.GetPixel(col, row)
}
