package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Flat returns the pigment color plus the emitted radiance at the first hit,
// ignoring all lighting
type Flat struct {
	World      *geometry.World
	Background core.Color
}

// NewFlat creates a flat renderer with a black background
func NewFlat(world *geometry.World) *Flat {
	return &Flat{World: world, Background: core.Black}
}

func (r *Flat) RayColor(ray core.Ray) core.Color {
	hit := r.World.RayIntersection(ray)
	if !hit.Hit {
		return r.Background
	}

	mat := hit.Shape.Material()
	return mat.BRDF.Pigment().Color(hit.SurfacePoint).
		Add(mat.EmittedRadiance.Color(hit.SurfacePoint))
}
