package integrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ErrUnknownAlgorithm is returned by New for unsupported algorithm names
var ErrUnknownAlgorithm = errors.New("unknown rendering algorithm")

// Algorithm names accepted by New
const (
	AlgorithmOnOff       = "onoff"
	AlgorithmFlat        = "flat"
	AlgorithmPathTracing = "pathtracing"
)

// Integrator estimates the radiance carried back along a camera ray
type Integrator interface {
	RayColor(ray core.Ray) core.Color
}

// New creates the integrator named by algorithm. config and pcg are only
// used by the path tracer.
func New(algorithm string, world *geometry.World, background core.Color, pcg *core.PCG, config PathTracingConfig) (Integrator, error) {
	switch strings.ToLower(algorithm) {
	case AlgorithmOnOff:
		r := NewOnOff(world)
		r.Background = background
		return r, nil
	case AlgorithmFlat:
		r := NewFlat(world)
		r.Background = background
		return r, nil
	case AlgorithmPathTracing:
		return NewPathTracing(world, background, pcg, config), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}
