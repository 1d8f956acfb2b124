package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestSphere_RayIntersection(t *testing.T) {
	sphere := NewSphere(core.IdentityTransformation(), nil)

	tests := []struct {
		name     string
		ray      core.Ray
		expected HitRecord
	}{
		{
			name: "from above",
			ray:  core.NewRay(core.NewPoint(0, 0, 2), core.VecZ.Negate()),
			expected: HitRecord{
				WorldPoint:   core.NewPoint(0, 0, 1),
				Normal:       core.NewNormal(0, 0, 1),
				SurfacePoint: core.NewVec2(0, 0),
				T:            1,
				Hit:          true,
			},
		},
		{
			name: "from the side",
			ray:  core.NewRay(core.NewPoint(3, 0, 0), core.VecX.Negate()),
			expected: HitRecord{
				WorldPoint:   core.NewPoint(1, 0, 0),
				Normal:       core.NewNormal(1, 0, 0),
				SurfacePoint: core.NewVec2(0, 0.5),
				T:            2,
				Hit:          true,
			},
		},
		{
			name: "from inside",
			ray:  core.NewRay(core.NewPoint(0, 0, 0), core.VecX),
			expected: HitRecord{
				WorldPoint:   core.NewPoint(1, 0, 0),
				Normal:       core.NewNormal(-1, 0, 0),
				SurfacePoint: core.NewVec2(0, 0.5),
				T:            1,
				Hit:          true,
			},
		},
		{
			name:     "passing outside",
			ray:      core.NewRay(core.NewPoint(0, 10, 2), core.VecZ.Negate()),
			expected: HitRecord{Hit: false},
		},
		{
			name:     "sphere behind the ray",
			ray:      core.NewRay(core.NewPoint(0, 0, 2), core.VecZ),
			expected: HitRecord{Hit: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := sphere.RayIntersection(tt.ray)
			tt.expected.Ray = tt.ray
			if !hit.IsClose(tt.expected) {
				t.Errorf("Expected %+v, got %+v", tt.expected, hit)
			}
			if hit.Hit && hit.Shape != Shape(sphere) {
				t.Error("Expected hit record to reference the sphere")
			}
		})
	}
}

func TestSphere_Tangent(t *testing.T) {
	sphere := NewSphere(core.IdentityTransformation(), nil)

	// delta == 0 counts as a miss
	hit := sphere.RayIntersection(core.NewRay(core.NewPoint(-2, 1, 0), core.VecX))
	if hit.Hit {
		t.Errorf("Expected tangent ray to miss, got %+v", hit)
	}
}

func TestSphere_RayRange(t *testing.T) {
	sphere := NewSphere(core.IdentityTransformation(), nil)
	ray := core.NewRay(core.NewPoint(0, 0, 2), core.VecZ.Negate())

	// Closest root (t=1) out of range, the far root (t=3) is used
	ray.TMin = 1.5
	hit := sphere.RayIntersection(ray)
	if !hit.Hit || !core.AreClose(hit.T, 3) {
		t.Errorf("Expected far hit at t=3, got %+v", hit)
	}
	if !hit.Normal.IsClose(core.NewNormal(0, 0, 1)) {
		t.Errorf("Expected normal facing the ray, got %v", hit.Normal)
	}

	ray.TMin = core.DefaultTMin
	ray.TMax = 0.5
	if hit := sphere.RayIntersection(ray); hit.Hit {
		t.Errorf("Expected miss when both roots are beyond TMax, got %+v", hit)
	}
}

func TestSphere_Transformed(t *testing.T) {
	sphere := NewSphere(core.Translation(core.NewVec(10, 0, 0)), nil)

	ray1 := core.NewRay(core.NewPoint(10, 0, 2), core.VecZ.Negate())
	expected1 := HitRecord{
		WorldPoint:   core.NewPoint(10, 0, 1),
		Normal:       core.NewNormal(0, 0, 1),
		SurfacePoint: core.NewVec2(0, 0),
		Ray:          ray1,
		T:            1,
		Hit:          true,
	}
	if hit := sphere.RayIntersection(ray1); !hit.IsClose(expected1) {
		t.Errorf("Expected %+v, got %+v", expected1, hit)
	}

	ray2 := core.NewRay(core.NewPoint(13, 0, 0), core.VecX.Negate())
	expected2 := HitRecord{
		WorldPoint:   core.NewPoint(11, 0, 0),
		Normal:       core.NewNormal(1, 0, 0),
		SurfacePoint: core.NewVec2(0, 0.5),
		Ray:          ray2,
		T:            2,
		Hit:          true,
	}
	if hit := sphere.RayIntersection(ray2); !hit.IsClose(expected2) {
		t.Errorf("Expected %+v, got %+v", expected2, hit)
	}

	// The untransformed positions must now miss
	if hit := sphere.RayIntersection(core.NewRay(core.NewPoint(0, 0, 2), core.VecZ.Negate())); hit.Hit {
		t.Error("Expected miss at the origin")
	}
	if hit := sphere.RayIntersection(core.NewRay(core.NewPoint(-10, 0, 0), core.VecZ.Negate())); hit.Hit {
		t.Error("Expected miss at x=-10")
	}
}

func TestSphere_Normals(t *testing.T) {
	tests := []struct {
		name      string
		transform core.Transformation
		ray       core.Ray
		expected  core.Normal
	}{
		{
			name:      "non-uniform scaling",
			transform: core.Scaling(core.NewVec(2, 1, 1)),
			ray:       core.NewRay(core.NewPoint(1, 1, 0), core.NewVec(-1, -1, 0)),
			expected:  core.NewNormal(1, 4, 0),
		},
		{
			name:      "mirrored sphere",
			transform: core.Scaling(core.NewVec(-1, -1, -1)),
			ray:       core.NewRay(core.NewPoint(0, 2, 0), core.VecY.Negate()),
			expected:  core.NewNormal(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := NewSphere(tt.transform, nil).RayIntersection(tt.ray)
			if !hit.Hit {
				t.Fatal("Expected hit, but got miss")
			}
			got, err := hit.Normal.Normalize()
			if err != nil {
				t.Fatalf("Degenerate normal: %v", err)
			}
			want, _ := tt.expected.Normalize()
			if !got.IsClose(want) {
				t.Errorf("Expected normal %v, got %v", want, got)
			}
		})
	}
}

func TestSphere_SurfacePoint(t *testing.T) {
	sphere := NewSphere(core.IdentityTransformation(), nil)

	tests := []struct {
		origin   core.Point
		expected core.Vec2
	}{
		{core.NewPoint(2, 0, 0), core.NewVec2(0, 0.5)},
		{core.NewPoint(0, 2, 0), core.NewVec2(0.25, 0.5)},
		{core.NewPoint(-2, 0, 0), core.NewVec2(0.5, 0.5)},
		{core.NewPoint(0, -2, 0), core.NewVec2(0.75, 0.5)},
		{core.NewPoint(2, 0, 0.5), core.NewVec2(0, 1.0/3.0)},
		{core.NewPoint(2, 0, -0.5), core.NewVec2(0, 2.0/3.0)},
	}

	for _, tt := range tests {
		// Aim horizontally at the axis so the hit lands on the sphere at height z
		ray := core.NewRay(tt.origin, core.NewVec(-tt.origin.X, -tt.origin.Y, 0))
		hit := sphere.RayIntersection(ray)
		if !hit.Hit {
			t.Fatalf("Expected hit from %v", tt.origin)
		}
		if !hit.SurfacePoint.IsClose(tt.expected) {
			t.Errorf("From %v: expected uv %v, got %v", tt.origin, tt.expected, hit.SurfacePoint)
		}
		if hit.SurfacePoint.U < 0 || hit.SurfacePoint.U >= 1 || math.IsNaN(hit.SurfacePoint.V) {
			t.Errorf("uv out of range: %v", hit.SurfacePoint)
		}
	}
}

func TestSphere_DefaultMaterial(t *testing.T) {
	sphere := NewSphere(core.IdentityTransformation(), nil)
	if sphere.Material() == nil {
		t.Fatal("Expected default material")
	}
}
