package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// LoadImage loads a PNG or JPEG image into an HDR image with channels in [0,1]
func LoadImage(filename string) (*core.HdrImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return FromImage(img), nil
}

// FromImage converts a decoded image into an HDR image
func FromImage(img image.Image) *core.HdrImage {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	hdr := core.NewHdrImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			hdr.SetPixel(x, y, core.NewColor(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			))
		}
	}

	return hdr
}

// LoadTexture loads an image pigment source, choosing the decoder by extension
func LoadTexture(filename string) (*core.HdrImage, error) {
	if strings.EqualFold(filepath.Ext(filename), ".pfm") {
		return ReadPFMFile(filename)
	}
	return LoadImage(filename)
}
