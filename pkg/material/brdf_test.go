package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDiffuseBRDF_Eval(t *testing.T) {
	brdf := NewDiffuseBRDF(NewUniformPigment(core.NewColor(0.5, 1.0, 0.25)), 0.8)
	normal := core.NewNormal(0, 0, 1)

	expected := core.NewColor(0.5, 1.0, 0.25).Multiply(0.8 / math.Pi)
	dirs := []core.Vec{core.NewVec(0, 0, 1), core.NewVec(1, 0, 1), core.NewVec(0, -1, 0.1)}

	for _, in := range dirs {
		for _, out := range dirs {
			if got := brdf.Eval(normal, in, out, core.NewVec2(0.3, 0.7)); !got.IsClose(expected) {
				t.Errorf("Eval(%v, %v): expected %v, got %v", in, out, expected, got)
			}
		}
	}
}

func TestDiffuseBRDF_ScatterRay(t *testing.T) {
	brdf := NewDiffuseBRDF(NewUniformPigment(core.White), 1.0)
	pcg := core.NewDefaultPCG()
	point := core.NewPoint(1, 2, 3)

	normals := []core.Normal{
		core.NewNormal(0, 0, 1),
		core.NewNormal(0, 0, -2),
		core.NewNormal(1, 1, 0),
		core.NewNormal(-3, 0.5, 2),
	}

	for _, normal := range normals {
		n, _ := normal.ToVec().Normalize()
		for i := 0; i < 1000; i++ {
			ray := brdf.ScatterRay(pcg, core.NewVec(1, 0, 0), point, normal, 4)

			if !ray.Origin.IsClose(point) {
				t.Fatalf("Expected origin %v, got %v", point, ray.Origin)
			}
			if ray.Depth != 4 {
				t.Fatalf("Expected depth 4, got %d", ray.Depth)
			}
			if ray.TMin != DiffuseScatterTMin || !math.IsInf(ray.TMax, 1) {
				t.Fatalf("Unexpected ray bounds [%f, %f]", ray.TMin, ray.TMax)
			}
			if !core.AreClose(ray.Direction.Norm(), 1) {
				t.Fatalf("Expected unit direction, got %v", ray.Direction)
			}
			if ray.Direction.Dot(n) < -core.Epsilon {
				t.Fatalf("Direction %v points below the surface with normal %v", ray.Direction, normal)
			}
		}
	}
}

func TestSpecularBRDF_Eval(t *testing.T) {
	color := core.NewColor(0.9, 0.8, 0.7)
	brdf := NewSpecularBRDF(NewUniformPigment(color))
	normal := core.NewNormal(0, 0, 2)
	uv := core.NewVec2(0, 0)

	tests := []struct {
		name     string
		in       core.Vec
		out      core.Vec
		expected core.Color
	}{
		{"mirror pair", core.NewVec(1, 0, 1), core.NewVec(-1, 0, 1), color},
		{"same angle any azimuth", core.NewVec(0, 2, 2), core.NewVec(1, 0, 1), color},
		{"different angles", core.NewVec(1, 0, 1), core.NewVec(0, 0, 1), core.Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := brdf.Eval(normal, tt.in, tt.out, uv); !got.IsClose(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSpecularBRDF_ScatterRay(t *testing.T) {
	brdf := NewSpecularBRDF(NewUniformPigment(core.White))
	pcg := core.NewDefaultPCG()
	before, _ := pcg.State()

	ray := brdf.ScatterRay(pcg, core.NewVec(2, 0, -2), core.NewPoint(0, 0, 0), core.NewNormal(0, 0, 3), 2)

	expected, _ := core.NewVec(1, 0, 1).Normalize()
	if !ray.Direction.IsClose(expected) {
		t.Errorf("Expected reflected direction %v, got %v", expected, ray.Direction)
	}
	if ray.Depth != 2 {
		t.Errorf("Expected depth 2, got %d", ray.Depth)
	}
	if after, _ := pcg.State(); after != before {
		t.Error("Specular scattering should not consume random numbers")
	}
}

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()
	uv := core.NewVec2(0.5, 0.5)

	if got := m.BRDF.Pigment().Color(uv); !got.IsClose(core.White) {
		t.Errorf("Expected white BRDF pigment, got %v", got)
	}
	if got := m.EmittedRadiance.Color(uv); !got.IsClose(core.Black) {
		t.Errorf("Expected black emission, got %v", got)
	}
}
