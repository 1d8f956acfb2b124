package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// newFurnace builds a closed unit sphere with uniform reflectance and emission
func newFurnace(emittedRadiance, reflectance float64) *geometry.World {
	mat := material.NewMaterial(
		material.NewDiffuseBRDF(material.NewUniformPigment(core.White.Multiply(reflectance)), 1.0),
		material.NewUniformPigment(core.White.Multiply(emittedRadiance)),
	)
	return geometry.NewWorld(geometry.NewSphere(core.IdentityTransformation(), mat))
}

// TestPathTracing_Furnace checks energy balance inside a closed sphere:
// the radiance is the geometric series e + ρe + ρ²e + ... = e/(1-ρ)
func TestPathTracing_Furnace(t *testing.T) {
	pcg := core.NewDefaultPCG()

	for i := 0; i < 5; i++ {
		emittedRadiance := pcg.RandomFloat()
		reflectance := pcg.RandomFloat() * 0.9

		world := newFurnace(emittedRadiance, reflectance)
		pathTracer := NewPathTracing(world, core.Black, pcg, PathTracingConfig{
			NumOfRays:            1,
			MaxDepth:             100,
			RussianRouletteLimit: 101,
		})

		ray := core.NewRay(core.NewPoint(0, 0, 0), core.VecX)
		color := pathTracer.RayColor(ray)

		expected := emittedRadiance / (1.0 - reflectance)
		for _, c := range []float64{color.R, color.G, color.B} {
			if math.Abs(c-expected) > 1e-3 {
				t.Errorf("e=%f ρ=%f: expected %f, got %v", emittedRadiance, reflectance, expected, color)
				break
			}
		}
	}
}

// TestPathTracing_RussianRouletteUnbiased runs the furnace with roulette active
// from depth 2 and checks that the average still converges to e/(1-ρ)
func TestPathTracing_RussianRouletteUnbiased(t *testing.T) {
	world := newFurnace(0.5, 0.5)
	pathTracer := NewPathTracing(world, core.Black, core.NewPCG(7, 11), PathTracingConfig{
		NumOfRays:            1,
		MaxDepth:             1000,
		RussianRouletteLimit: 2,
	})

	const samples = 20000
	sum := 0.0
	for i := 0; i < samples; i++ {
		sum += pathTracer.RayColor(core.NewRay(core.NewPoint(0, 0, 0), core.VecX)).G
	}

	if mean := sum / samples; math.Abs(mean-1.0) > 0.02 {
		t.Errorf("Expected mean radiance 1.0, got %f", mean)
	}
}

func TestPathTracing_DepthLimit(t *testing.T) {
	world := newFurnace(1.0, 0.5)
	pathTracer := NewPathTracing(world, core.Black, nil, PathTracingConfig{
		NumOfRays:            1,
		MaxDepth:             0,
		RussianRouletteLimit: 10,
	})

	ray := core.NewRay(core.NewPoint(0, 0, 0), core.VecX)
	ray.Depth = 1
	if got := pathTracer.RayColor(ray); !got.IsClose(core.Black) {
		t.Errorf("Expected black beyond max depth, got %v", got)
	}

	// Depth 0 hits the emitter, its children are cut off
	ray.Depth = 0
	if got := pathTracer.RayColor(ray); !got.IsClose(core.White) {
		t.Errorf("Expected only the emitted radiance, got %v", got)
	}
}

func TestPathTracing_Background(t *testing.T) {
	background := core.NewColor(0.2, 0.4, 0.6)
	pathTracer := NewPathTracing(geometry.NewWorld(), background, nil, DefaultPathTracingConfig())

	if got := pathTracer.RayColor(core.NewRay(core.NewPoint(0, 0, 0), core.VecX)); !got.IsClose(background) {
		t.Errorf("Expected background %v, got %v", background, got)
	}
}

func TestPathTracing_BlackSurfaceSkipsRecursion(t *testing.T) {
	world := newFurnace(0.3, 0)
	pcg := core.NewDefaultPCG()
	pathTracer := NewPathTracing(world, core.White, pcg, DefaultPathTracingConfig())

	before, _ := pcg.State()
	got := pathTracer.RayColor(core.NewRay(core.NewPoint(0, 0, 0), core.VecX))
	after, _ := pcg.State()

	if !got.IsClose(core.White.Multiply(0.3)) {
		t.Errorf("Expected emitted radiance only, got %v", got)
	}
	if before != after {
		t.Error("Expected no random numbers to be consumed")
	}
}
