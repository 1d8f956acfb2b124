package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func newTestTracer() *ImageTracer {
	image := core.NewHdrImage(4, 2)
	camera := NewPerspectiveCamera(1.0, 2.0, core.IdentityTransformation())
	return NewImageTracer(image, camera, 0, nil)
}

func TestImageTracer_UVSubMapping(t *testing.T) {
	tracer := newTestTracer()

	ray1 := tracer.FireRay(0, 0, 2.5, 1.5)
	ray2 := tracer.FireRay(2, 1, 0.5, 0.5)
	if !ray1.IsClose(ray2) {
		t.Errorf("Expected %v == %v", ray1, ray2)
	}
}

func TestImageTracer_Orientation(t *testing.T) {
	tracer := newTestTracer()

	topLeft := tracer.FireRay(0, 0, 0.0, 0.0)
	if got := topLeft.At(1.0); !got.IsClose(core.NewPoint(0, 2, 1)) {
		t.Errorf("Top-left: expected (0, 2, 1), got %v", got)
	}

	bottomRight := tracer.FireRay(3, 1, 1.0, 1.0)
	if got := bottomRight.At(1.0); !got.IsClose(core.NewPoint(0, -2, -1)) {
		t.Errorf("Bottom-right: expected (0, -2, -1), got %v", got)
	}
}

func TestImageTracer_FireAllRays(t *testing.T) {
	tracer := newTestTracer()
	logger := &recordingLogger{}
	tracer.SetLogger(logger)

	stats := tracer.FireAllRays(func(ray core.Ray) core.Color {
		return core.NewColor(1, 2, 3)
	})

	for row := 0; row < tracer.Image.Height; row++ {
		for col := 0; col < tracer.Image.Width; col++ {
			if got := tracer.Image.GetPixel(col, row); !got.IsClose(core.NewColor(1, 2, 3)) {
				t.Errorf("Pixel (%d, %d): expected (1, 2, 3), got %v", col, row, got)
			}
		}
	}

	if stats.TotalPixels != 8 || stats.TotalSamples != 8 || stats.AverageSamples != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if len(logger.lines) == 0 || !strings.HasPrefix(logger.lines[0], "Tracing") {
		t.Errorf("Expected progress to be logged, got %v", logger.lines)
	}
}

func TestImageTracer_PixelCenters(t *testing.T) {
	// Each pixel records the screen point of its ray; recovering (col, row)
	// from that point must give back the pixel.
	image := core.NewHdrImage(5, 3)
	camera := NewOrthogonalCamera(1.0, core.IdentityTransformation())
	tracer := NewImageTracer(image, camera, 0, nil)

	tracer.FireAllRays(func(ray core.Ray) core.Color {
		p := ray.At(1.0)
		u := (1.0 - p.Y) / 2.0
		v := (p.Z + 1.0) / 2.0
		return core.NewColor(u*5.0-0.5, (1.0-v)*3.0-0.5, 0)
	})

	for row := 0; row < 3; row++ {
		for col := 0; col < 5; col++ {
			got := image.GetPixel(col, row)
			if !core.AreClose(got.R, float64(col)) || !core.AreClose(got.G, float64(row)) {
				t.Errorf("Pixel (%d, %d) recovered as (%f, %f)", col, row, got.R, got.G)
			}
		}
	}
}

func TestImageTracer_StratifiedSampling(t *testing.T) {
	image := core.NewHdrImage(1, 1)
	camera := NewOrthogonalCamera(1.0, core.IdentityTransformation())
	tracer := NewImageTracer(image, camera, 10, core.NewDefaultPCG())

	numOfRays := 0
	buckets := make(map[[2]int]int)
	stats := tracer.FireAllRays(func(ray core.Ray) core.Color {
		p := ray.At(1.0)
		if !core.AreClose(p.X, 0) {
			t.Errorf("Expected ray to cross the screen at x=0, got %v", p)
		}
		if p.Y < -1 || p.Y > 1 || p.Z < -1 || p.Z > 1 {
			t.Errorf("Ray crosses the screen outside [-1,1]²: %v", p)
		}

		// Screen coordinates back to sub-cell indices
		u := (1.0 - p.Y) / 2.0
		v := 1.0 - (p.Z+1.0)/2.0
		buckets[[2]int{int(u * 10), int(v * 10)}]++

		numOfRays++
		return core.White
	})

	if numOfRays != 100 || stats.TotalSamples != 100 {
		t.Errorf("Expected 100 rays, got %d (stats %d)", numOfRays, stats.TotalSamples)
	}
	if len(buckets) != 100 {
		t.Errorf("Expected one ray per sub-cell, got %d distinct cells", len(buckets))
	}
	if !image.GetPixel(0, 0).IsClose(core.White) {
		t.Errorf("Expected average white, got %v", image.GetPixel(0, 0))
	}
}

func TestSamplesPerSide(t *testing.T) {
	tests := []struct {
		samples     int
		expected    int
		expectError bool
	}{
		{1, 0, false},
		{4, 2, false},
		{9, 3, false},
		{100, 10, false},
		{0, 0, true},
		{-4, 0, true},
		{2, 0, true},
		{10, 0, true},
	}

	for _, tt := range tests {
		side, err := SamplesPerSide(tt.samples)
		if tt.expectError {
			if !errors.Is(err, ErrInvalidSamples) {
				t.Errorf("SamplesPerSide(%d): expected ErrInvalidSamples, got %v", tt.samples, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("SamplesPerSide(%d): unexpected error %v", tt.samples, err)
		}
		if side != tt.expected {
			t.Errorf("SamplesPerSide(%d): expected %d, got %d", tt.samples, tt.expected, side)
		}
	}
}
