package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Camera maps normalized screen coordinates (u, v) ∈ [0,1]² to a world-space ray.
// (0, 0) is the bottom-left corner of the screen and (1, 1) the top-right.
type Camera interface {
	FireRay(u, v float64) core.Ray
}

// OrthogonalCamera fires parallel rays along +x from the screen plane x=0,
// placed in the world by Transformation
type OrthogonalCamera struct {
	AspectRatio    float64
	Transformation core.Transformation
}

// NewOrthogonalCamera creates an orthogonal camera
func NewOrthogonalCamera(aspectRatio float64, transformation core.Transformation) *OrthogonalCamera {
	return &OrthogonalCamera{AspectRatio: aspectRatio, Transformation: transformation}
}

// FireRay generates a ray for screen coordinates (u, v)
func (c *OrthogonalCamera) FireRay(u, v float64) core.Ray {
	origin := core.NewPoint(-1.0, (1.0-2.0*u)*c.AspectRatio, 2.0*v-1.0)
	return core.NewRay(origin, core.VecX).Transform(c.Transformation)
}

// PerspectiveCamera fires rays from an eye at (-ScreenDistance, 0, 0) through
// the screen plane x=0, placed in the world by Transformation
type PerspectiveCamera struct {
	ScreenDistance float64
	AspectRatio    float64
	Transformation core.Transformation
}

// NewPerspectiveCamera creates a perspective camera
func NewPerspectiveCamera(screenDistance, aspectRatio float64, transformation core.Transformation) *PerspectiveCamera {
	return &PerspectiveCamera{
		ScreenDistance: screenDistance,
		AspectRatio:    aspectRatio,
		Transformation: transformation,
	}
}

// FireRay generates a ray for screen coordinates (u, v)
func (c *PerspectiveCamera) FireRay(u, v float64) core.Ray {
	origin := core.NewPoint(-c.ScreenDistance, 0, 0)
	direction := core.NewVec(c.ScreenDistance, (1.0-2.0*u)*c.AspectRatio, 2.0*v-1.0)
	return core.NewRay(origin, direction).Transform(c.Transformation)
}

// Aperture returns the horizontal field of view in radians
func (c *PerspectiveCamera) Aperture() float64 {
	return 2.0 * math.Atan(c.ScreenDistance/c.AspectRatio)
}

// ApertureDeg returns the horizontal field of view in degrees
func (c *PerspectiveCamera) ApertureDeg() float64 {
	return c.Aperture() * 180.0 / math.Pi
}
