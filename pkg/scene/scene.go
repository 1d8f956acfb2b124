package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by ByName for unregistered scene names
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	World      *geometry.World
	Camera     renderer.Camera
	Materials  map[string]*material.Material // Named materials used by the shapes
	Background core.Color
}

// Options controls the camera placement of the built-in scenes
type Options struct {
	// Camera is "perspective" or "orthogonal"
	Camera string `json:"camera"`
	// AspectRatio is the image width divided by its height
	AspectRatio float64 `json:"aspect_ratio"`
	// AngleDeg rotates the camera around the z axis
	AngleDeg float64 `json:"angle_deg"`
	// Distance is the screen distance of the perspective camera
	Distance float64 `json:"distance"`
	// GroundTexture replaces the checkered ground of the demo scene
	GroundTexture *core.HdrImage `json:"-"`
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Camera:      "perspective",
		AspectRatio: 1.0,
		AngleDeg:    0,
		Distance:    1.0,
	}
}

// NewCamera builds the camera selected by opts with the given placement
func NewCamera(opts Options, transformation core.Transformation) (renderer.Camera, error) {
	aspectRatio := opts.AspectRatio
	if aspectRatio <= 0 {
		aspectRatio = 1.0
	}

	switch opts.Camera {
	case "", "perspective":
		distance := opts.Distance
		if distance <= 0 {
			distance = 1.0
		}
		return renderer.NewPerspectiveCamera(distance, aspectRatio, transformation), nil
	case "orthogonal":
		return renderer.NewOrthogonalCamera(aspectRatio, transformation), nil
	default:
		return nil, fmt.Errorf("unknown camera type: %s", opts.Camera)
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
