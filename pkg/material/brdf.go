package material

import "github.com/df07/go-pathtracer/pkg/core"

// BRDF describes how a surface scatters incoming light.
// Implementations are immutable and may be shared between shapes.
type BRDF interface {
	// Eval returns the BRDF value for the given incoming and outgoing directions
	Eval(normal core.Normal, in, out core.Vec, uv core.Vec2) core.Color

	// ScatterRay samples a new ray leaving point, given the incoming direction
	ScatterRay(pcg *core.PCG, in core.Vec, point core.Point, normal core.Normal, depth int) core.Ray

	// Pigment returns the surface color source
	Pigment() Pigment
}
