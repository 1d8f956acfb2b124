package core

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// DefaultLuminosityDelta keeps black pixels from sending the log-average to -Inf
const DefaultLuminosityDelta = 1e-10

// HdrImage is a floating-point RGB image stored row-major (Pixels[y*Width + x]).
// Row 0 is the top row of the picture.
type HdrImage struct {
	Width  int
	Height int
	Pixels []Color
}

// NewHdrImage creates a black image
func NewHdrImage(width, height int) *HdrImage {
	return &HdrImage{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// ValidCoordinates reports whether (x, y) lies inside the image
func (img *HdrImage) ValidCoordinates(x, y int) bool {
	return x >= 0 && x < img.Width && y >= 0 && y < img.Height
}

// PixelOffset returns the index of (x, y) in Pixels
func (img *HdrImage) PixelOffset(x, y int) int {
	return y*img.Width + x
}

// GetPixel returns the color at (x, y)
func (img *HdrImage) GetPixel(x, y int) Color {
	if !img.ValidCoordinates(x, y) {
		panic(fmt.Sprintf("pixel (%d, %d) outside %dx%d image", x, y, img.Width, img.Height))
	}
	return img.Pixels[img.PixelOffset(x, y)]
}

// SetPixel stores the color at (x, y)
func (img *HdrImage) SetPixel(x, y int, c Color) {
	if !img.ValidCoordinates(x, y) {
		panic(fmt.Sprintf("pixel (%d, %d) outside %dx%d image", x, y, img.Width, img.Height))
	}
	img.Pixels[img.PixelOffset(x, y)] = c
}

// AverageLuminosity returns the logarithmic average of the pixel luminosities
func (img *HdrImage) AverageLuminosity(delta float64) float64 {
	if len(img.Pixels) == 0 {
		return 0
	}
	cumSum := 0.0
	for _, pixel := range img.Pixels {
		cumSum += math.Log10(delta + pixel.Luminosity())
	}
	return math.Pow(10, cumSum/float64(len(img.Pixels)))
}

// Normalize scales the image so that its average luminosity becomes factor
func (img *HdrImage) Normalize(factor float64) {
	img.NormalizeWithLuminosity(factor, img.AverageLuminosity(DefaultLuminosityDelta))
}

// NormalizeWithLuminosity scales every pixel by factor/luminosity
func (img *HdrImage) NormalizeWithLuminosity(factor, luminosity float64) {
	for i := range img.Pixels {
		img.Pixels[i] = img.Pixels[i].Multiply(factor / luminosity)
	}
}

// ClampImage maps every channel into [0, 1) with x/(1+x)
func (img *HdrImage) ClampImage() {
	for i, p := range img.Pixels {
		img.Pixels[i] = Color{clampChannel(p.R), clampChannel(p.G), clampChannel(p.B)}
	}
}

func clampChannel(x float64) float64 {
	return x / (1 + x)
}

// ToRGBA converts an already tone-mapped image to 8-bit RGBA, applying gamma correction
func (img *HdrImage) ToRGBA(gamma float64) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	invGamma := 1.0 / gamma
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.Pixels[img.PixelOffset(x, y)]
			out.SetRGBA(x, y, color.RGBA{
				R: toByte(p.R, invGamma),
				G: toByte(p.G, invGamma),
				B: toByte(p.B, invGamma),
				A: 255,
			})
		}
	}
	return out
}

func toByte(v, invGamma float64) uint8 {
	v = math.Pow(max(0, min(1, v)), invGamma)
	return uint8(255 * v)
}
