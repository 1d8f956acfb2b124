package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultSpecularThreshold is the angular tolerance used by Eval (0.1 degrees)
const DefaultSpecularThreshold = math.Pi / 1800.0

// SpecularBRDF is a perfect mirror
type SpecularBRDF struct {
	pigment           Pigment
	ThresholdAngleRad float64
}

// NewSpecularBRDF creates a mirror BRDF with the default angular threshold
func NewSpecularBRDF(pigment Pigment) *SpecularBRDF {
	return &SpecularBRDF{pigment: pigment, ThresholdAngleRad: DefaultSpecularThreshold}
}

// Pigment returns the surface color source
func (s *SpecularBRDF) Pigment() Pigment {
	return s.pigment
}

// Eval returns the pigment color when in and out make the same angle with
// the normal (within the threshold), black otherwise
func (s *SpecularBRDF) Eval(normal core.Normal, in, out core.Vec, uv core.Vec2) core.Color {
	n, errN := normal.ToVec().Normalize()
	inDir, errIn := in.Normalize()
	outDir, errOut := out.Normalize()
	if errN != nil || errIn != nil || errOut != nil {
		return core.Black
	}

	thetaIn := math.Acos(clampCos(n.Dot(inDir)))
	thetaOut := math.Acos(clampCos(n.Dot(outDir)))

	if math.Abs(thetaIn-thetaOut) < s.ThresholdAngleRad {
		return s.pigment.Color(uv)
	}
	return core.Black
}

// ScatterRay reflects the incoming direction about the normal
func (s *SpecularBRDF) ScatterRay(pcg *core.PCG, in core.Vec, point core.Point, normal core.Normal, depth int) core.Ray {
	dir, err := in.Normalize()
	if err != nil {
		dir = in
	}
	n, err := normal.ToVec().Normalize()
	if err != nil {
		n = core.VecZ
	}

	return core.Ray{
		Origin:    point,
		Direction: core.Reflect(dir, n),
		TMin:      core.DefaultTMin,
		TMax:      math.Inf(1),
		Depth:     depth,
	}
}

func clampCos(x float64) float64 {
	return max(-1.0, min(1.0, x))
}
