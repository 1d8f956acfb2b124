package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// PathTracingConfig contains the path tracer parameters
type PathTracingConfig struct {
	NumOfRays            int // Secondary rays fired at each bounce
	MaxDepth             int // Rays deeper than this return black
	RussianRouletteLimit int // Depth at which Russian roulette starts
}

// DefaultPathTracingConfig returns sensible default values
func DefaultPathTracingConfig() PathTracingConfig {
	return PathTracingConfig{
		NumOfRays:            10,
		MaxDepth:             2,
		RussianRouletteLimit: 3,
	}
}

// PathTracing implements recursive Monte Carlo path tracing with
// Russian roulette termination
type PathTracing struct {
	World      *geometry.World
	Background core.Color
	PCG        *core.PCG
	config     PathTracingConfig
}

// NewPathTracing creates a path tracer. A nil pcg selects the default seed pair.
func NewPathTracing(world *geometry.World, background core.Color, pcg *core.PCG, config PathTracingConfig) *PathTracing {
	if pcg == nil {
		pcg = core.NewDefaultPCG()
	}
	return &PathTracing{
		World:      world,
		Background: background,
		PCG:        pcg,
		config:     config,
	}
}

// Config returns the path tracer parameters
func (pt *PathTracing) Config() PathTracingConfig {
	return pt.config
}

// RayColor computes the radiance for a single ray
func (pt *PathTracing) RayColor(ray core.Ray) core.Color {
	if ray.Depth > pt.config.MaxDepth {
		return core.Black
	}

	hit := pt.World.RayIntersection(ray)
	if !hit.Hit {
		return pt.Background
	}

	mat := hit.Shape.Material()
	hitColor := mat.BRDF.Pigment().Color(hit.SurfacePoint)
	emittedRadiance := mat.EmittedRadiance.Color(hit.SurfacePoint)

	hitColorLum := hitColor.Luminosity()

	// q is the probability of terminating the path
	if ray.Depth >= pt.config.RussianRouletteLimit {
		q := max(0.5, 1.0-hitColorLum)
		if pt.PCG.RandomFloat() > q {
			hitColor = hitColor.Multiply(1.0 / (1.0 - q))
		} else {
			return emittedRadiance
		}
	}

	if hitColorLum <= 0 || pt.config.NumOfRays <= 0 {
		return emittedRadiance
	}

	cumRadiance := core.Black
	for i := 0; i < pt.config.NumOfRays; i++ {
		newRay := mat.BRDF.ScatterRay(pt.PCG, ray.Direction, hit.WorldPoint, hit.Normal, ray.Depth+1)
		newRadiance := pt.RayColor(newRay)
		cumRadiance = cumRadiance.Add(hitColor.MultiplyColor(newRadiance))
	}

	return emittedRadiance.Add(cumRadiance.Multiply(1.0 / float64(pt.config.NumOfRays)))
}
