package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Plane is the infinite z=0 plane, placed in the world by Transform
type Plane struct {
	Transform core.Transformation
	material  *material.Material
}

// NewPlane creates a new plane. A nil material selects material.DefaultMaterial.
func NewPlane(transform core.Transformation, mat *material.Material) *Plane {
	return &Plane{
		Transform: transform,
		material:  materialOrDefault(mat),
	}
}

// Material returns the plane's material
func (p *Plane) Material() *material.Material {
	return p.material
}

// RayIntersection tests if a ray intersects with the plane
func (p *Plane) RayIntersection(ray core.Ray) HitRecord {
	invRay := ray.Transform(p.Transform.Inverse())

	// Parallel rays never hit
	if math.Abs(invRay.Direction.Z) < core.Epsilon {
		return HitRecord{}
	}

	t := -invRay.Origin.Z / invRay.Direction.Z
	if t <= invRay.TMin || t >= invRay.TMax {
		return HitRecord{}
	}

	hitPoint := invRay.At(t)

	normal := core.NewNormal(0, 0, 1)
	if invRay.Direction.Z >= 0 {
		normal = normal.Negate()
	}

	return HitRecord{
		WorldPoint:   p.Transform.ApplyPoint(hitPoint),
		Normal:       p.Transform.ApplyNormal(normal),
		SurfacePoint: core.NewVec2(hitPoint.X-math.Floor(hitPoint.X), hitPoint.Y-math.Floor(hitPoint.Y)),
		Ray:          ray,
		Shape:        p,
		T:            t,
		Hit:          true,
	}
}
