package loaders

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.png")

	// Create a simple 2x2 test image
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	hdr, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if hdr.Width != 2 || hdr.Height != 2 {
		t.Fatalf("Expected 2x2 image, got %dx%d", hdr.Width, hdr.Height)
	}

	tests := []struct {
		x, y     int
		expected core.Color
	}{
		{0, 0, core.NewColor(1, 1, 1)},
		{1, 0, core.NewColor(1, 0, 0)},
		{0, 1, core.NewColor(0, 1, 0)},
		{1, 1, core.NewColor(0, 0, 1)},
	}
	for _, tt := range tests {
		if got := hdr.GetPixel(tt.x, tt.y); !got.IsClose(tt.expected) {
			t.Errorf("Pixel (%d, %d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestLoadImage_Errors(t *testing.T) {
	if _, err := LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error for missing file")
	}

	bogus := filepath.Join(t.TempDir(), "bogus.png")
	if err := os.WriteFile(bogus, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(bogus); err == nil {
		t.Error("Expected error for undecodable file")
	}
}

func TestWriteLDR_PNG(t *testing.T) {
	hdr := core.NewHdrImage(2, 1)
	hdr.SetPixel(0, 0, core.NewColor(1, 0, 0.25))
	hdr.SetPixel(1, 0, core.NewColor(0, 1, 0))

	var buf bytes.Buffer
	if err := WriteLDR(&buf, hdr, "png", 1.0); err != nil {
		t.Fatalf("WriteLDR failed: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a valid PNG: %v", err)
	}
	back := FromImage(decoded)
	for i, p := range hdr.Pixels {
		got := back.Pixels[i]
		if math.Abs(got.R-p.R) > 0.01 || math.Abs(got.G-p.G) > 0.01 || math.Abs(got.B-p.B) > 0.01 {
			t.Errorf("Pixel %d: expected %v, got %v", i, p, got)
		}
	}
}

func TestWriteLDR_Formats(t *testing.T) {
	hdr := core.NewHdrImage(4, 4)

	for _, format := range []string{"png", "PNG", "jpg", "jpeg"} {
		var buf bytes.Buffer
		if err := WriteLDR(&buf, hdr, format, 2.2); err != nil {
			t.Errorf("Format %s: unexpected error %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Format %s: empty output", format)
		}
	}

	var buf bytes.Buffer
	if err := WriteLDR(&buf, hdr, "bmp", 1.0); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestToneMap(t *testing.T) {
	hdr := core.NewHdrImage(2, 1)
	hdr.SetPixel(0, 0, core.NewColor(5, 10, 15))
	hdr.SetPixel(1, 0, core.NewColor(500, 1000, 1500))

	ToneMap(hdr, 0.18, 0)

	for _, p := range hdr.Pixels {
		for _, c := range []float64{p.R, p.G, p.B} {
			if c < 0 || c >= 1 {
				t.Errorf("Tone-mapped channel out of range: %f", c)
			}
		}
	}
	// Average luminosity is 100, so the first pixel's green channel becomes 0.018 before clamping
	if expected := 0.018 / 1.018; !core.AreClose(hdr.GetPixel(0, 0).G, expected) {
		t.Errorf("Expected %f, got %f", expected, hdr.GetPixel(0, 0).G)
	}
}
