package material

import "github.com/df07/go-pathtracer/pkg/core"

// Material pairs a BRDF with the radiance the surface emits.
// Materials are shared between shapes by pointer and never mutated after creation.
type Material struct {
	BRDF            BRDF
	EmittedRadiance Pigment
}

// NewMaterial creates a material from a BRDF and an emission pigment
func NewMaterial(brdf BRDF, emitted Pigment) *Material {
	return &Material{BRDF: brdf, EmittedRadiance: emitted}
}

// DefaultMaterial is a white diffuse surface that emits nothing
func DefaultMaterial() *Material {
	return &Material{
		BRDF:            NewDiffuseBRDF(NewUniformPigment(core.White), 1.0),
		EmittedRadiance: NewUniformPigment(core.Black),
	}
}
