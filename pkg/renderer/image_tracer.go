package renderer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidSamples is returned by SamplesPerSide for counts that are not perfect squares
var ErrInvalidSamples = errors.New("samples per pixel must be a positive perfect square")

// SamplesPerSide converts a samples-per-pixel count into the side of the
// stratification grid. One sample maps to 0, a single centered ray.
func SamplesPerSide(samplesPerPixel int) (int, error) {
	if samplesPerPixel < 1 {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidSamples, samplesPerPixel)
	}
	if samplesPerPixel == 1 {
		return 0, nil
	}
	side := int(math.Round(math.Sqrt(float64(samplesPerPixel))))
	if side*side != samplesPerPixel {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidSamples, samplesPerPixel)
	}
	return side, nil
}

// RadianceFunc estimates the radiance carried back along a ray
type RadianceFunc func(ray core.Ray) core.Color

// ImageTracer fires camera rays through the pixels of an HDR image.
// Pixel row 0 is the top of the image.
type ImageTracer struct {
	Image          *core.HdrImage
	Camera         Camera
	SamplesPerSide int // Stratified samples per pixel side; 0 fires one centered ray
	PCG            *core.PCG
	logger         core.Logger
}

// NewImageTracer creates an image tracer. A nil pcg selects the default seed pair.
func NewImageTracer(image *core.HdrImage, camera Camera, samplesPerSide int, pcg *core.PCG) *ImageTracer {
	if pcg == nil {
		pcg = core.NewDefaultPCG()
	}
	return &ImageTracer{
		Image:          image,
		Camera:         camera,
		SamplesPerSide: samplesPerSide,
		PCG:            pcg,
		logger:         discardLogger{},
	}
}

// SetLogger enables progress logging
func (it *ImageTracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = discardLogger{}
	}
	it.logger = logger
}

// FireRay generates the camera ray through pixel (col, row) at the
// sub-pixel offset (uPixel, vPixel) ∈ [0,1]²
func (it *ImageTracer) FireRay(col, row int, uPixel, vPixel float64) core.Ray {
	u := (float64(col) + uPixel) / float64(it.Image.Width)
	v := 1.0 - (float64(row)+vPixel)/float64(it.Image.Height)
	return it.Camera.FireRay(u, v)
}

// FireAllRays evaluates fn for every pixel and stores the result in Image.
// With SamplesPerSide = n > 0 each pixel averages n×n jittered rays, one per sub-cell.
func (it *ImageTracer) FireAllRays(fn RadianceFunc) RenderStats {
	start := time.Now()
	width, height := it.Image.Width, it.Image.Height
	stats := RenderStats{TotalPixels: width * height}

	it.logger.Printf("Tracing %dx%d image, %d samples per pixel\n", width, height, it.samplesPerPixel())

	lastReported := 0
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			pixel := it.tracePixel(col, row, fn)
			stats.TotalSamples += pixel.SampleCount
			it.Image.SetPixel(col, row, pixel.GetColor())
		}

		if percent := (row + 1) * 100 / height; percent/10 > lastReported/10 {
			lastReported = percent
			it.logger.Printf("  %d%% (%d/%d rows)\n", percent, row+1, height)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	stats.Elapsed = time.Since(start)
	it.logger.Printf("Traced %d rays in %v\n", stats.TotalSamples, stats.Elapsed)

	return stats
}

func (it *ImageTracer) tracePixel(col, row int, fn RadianceFunc) PixelStats {
	var pixel PixelStats

	if it.SamplesPerSide <= 0 {
		pixel.AddSample(fn(it.FireRay(col, row, 0.5, 0.5)))
		return pixel
	}

	n := float64(it.SamplesPerSide)
	for interRow := 0; interRow < it.SamplesPerSide; interRow++ {
		for interCol := 0; interCol < it.SamplesPerSide; interCol++ {
			uPixel := (float64(interCol) + it.PCG.RandomFloat()) / n
			vPixel := (float64(interRow) + it.PCG.RandomFloat()) / n
			pixel.AddSample(fn(it.FireRay(col, row, uPixel, vPixel)))
		}
	}
	return pixel
}

func (it *ImageTracer) samplesPerPixel() int {
	if it.SamplesPerSide <= 0 {
		return 1
	}
	return it.SamplesPerSide * it.SamplesPerSide
}
