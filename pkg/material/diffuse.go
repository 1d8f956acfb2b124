package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseScatterTMin keeps scattered rays from re-hitting their own surface
const DiffuseScatterTMin = 1e-3

// DiffuseBRDF is an ideal Lambertian surface
type DiffuseBRDF struct {
	pigment     Pigment
	Reflectance float64
}

// NewDiffuseBRDF creates a Lambertian BRDF with the given pigment and reflectance
func NewDiffuseBRDF(pigment Pigment, reflectance float64) *DiffuseBRDF {
	return &DiffuseBRDF{pigment: pigment, Reflectance: reflectance}
}

// Pigment returns the surface color source
func (d *DiffuseBRDF) Pigment() Pigment {
	return d.pigment
}

// Eval returns color * reflectance / π, independent of directions
func (d *DiffuseBRDF) Eval(normal core.Normal, in, out core.Vec, uv core.Vec2) core.Color {
	return d.pigment.Color(uv).Multiply(d.Reflectance / math.Pi)
}

// ScatterRay picks a cosine-weighted direction in the hemisphere around normal
func (d *DiffuseBRDF) ScatterRay(pcg *core.PCG, in core.Vec, point core.Point, normal core.Normal, depth int) core.Ray {
	n, err := normal.ToVec().Normalize()
	if err != nil {
		n = core.VecZ
	}

	cosThetaSq := pcg.RandomFloat()
	phiFraction := pcg.RandomFloat()
	direction := core.SampleCosineHemisphere(n, core.NewVec2(cosThetaSq, phiFraction))

	return core.Ray{
		Origin:    point,
		Direction: direction,
		TMin:      DiffuseScatterTMin,
		TMax:      math.Inf(1),
		Depth:     depth,
	}
}
