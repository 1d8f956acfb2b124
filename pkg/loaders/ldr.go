package loaders

import (
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultGamma is the display gamma used when exporting LDR images
const DefaultGamma = 1.0

// WriteLDR encodes a tone-mapped image as "png" or "jpeg".
// img must already be normalized and clamped to [0,1].
func WriteLDR(w io.Writer, img *core.HdrImage, format string, gamma float64) error {
	rgba := img.ToRGBA(gamma)

	switch strings.ToLower(format) {
	case "png":
		if err := png.Encode(w, rgba); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
	case "jpg", "jpeg":
		if err := jpeg.Encode(w, rgba, &jpeg.Options{Quality: 95}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("unsupported LDR format: %s", format)
	}
	return nil
}

// WriteLDRFile writes img to disk, picking the format from the file extension
func WriteLDRFile(filename string, img *core.HdrImage, gamma float64) error {
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	if format == "" {
		format = "png"
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WriteLDR(file, img, format, gamma); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ToneMap normalizes img by its average luminosity and clamps it to [0,1].
// A non-positive luminosity is computed from the image.
func ToneMap(img *core.HdrImage, factor, luminosity float64) {
	if luminosity <= 0 {
		img.Normalize(factor)
	} else {
		img.NormalizeWithLuminosity(factor, luminosity)
	}
	img.ClampImage()
}
