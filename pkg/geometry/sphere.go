package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere is the unit sphere centered at the origin, placed in the world by Transform
type Sphere struct {
	Transform core.Transformation
	material  *material.Material
}

// NewSphere creates a new sphere. A nil material selects material.DefaultMaterial.
func NewSphere(transform core.Transformation, mat *material.Material) *Sphere {
	return &Sphere{
		Transform: transform,
		material:  materialOrDefault(mat),
	}
}

// Material returns the sphere's material
func (s *Sphere) Material() *material.Material {
	return s.material
}

// RayIntersection tests if a ray intersects with the sphere
func (s *Sphere) RayIntersection(ray core.Ray) HitRecord {
	invRay := ray.Transform(s.Transform.Inverse())
	originVec := invRay.Origin.ToVec()

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := invRay.Direction.SquaredNorm()
	halfB := originVec.Dot(invRay.Direction)
	c := originVec.SquaredNorm() - 1.0

	delta := halfB*halfB - a*c
	if delta <= 0 {
		return HitRecord{}
	}

	sqrtDelta := math.Sqrt(delta)
	tMin := (-halfB - sqrtDelta) / a
	tMax := (-halfB + sqrtDelta) / a

	var t float64
	switch {
	case tMin > invRay.TMin && tMin < invRay.TMax:
		t = tMin
	case tMax > invRay.TMin && tMax < invRay.TMax:
		t = tMax
	default:
		return HitRecord{}
	}

	hitPoint := invRay.At(t)

	return HitRecord{
		WorldPoint:   s.Transform.ApplyPoint(hitPoint),
		Normal:       s.Transform.ApplyNormal(sphereNormal(hitPoint, invRay.Direction)),
		SurfacePoint: spherePointToUV(hitPoint),
		Ray:          ray,
		Shape:        s,
		T:            t,
		Hit:          true,
	}
}

// sphereNormal returns the radius vector at point, flipped to face against rayDir
func sphereNormal(point core.Point, rayDir core.Vec) core.Normal {
	n := core.NewNormal(point.X, point.Y, point.Z)
	if point.ToVec().Dot(rayDir) < 0 {
		return n
	}
	return n.Negate()
}

// spherePointToUV maps a point on the unit sphere to (u, v) in [0,1]²
func spherePointToUV(point core.Point) core.Vec2 {
	u := math.Atan2(point.Y, point.X) / (2.0 * math.Pi)
	if u < 0 {
		u += 1.0
	}
	z := max(-1.0, min(1.0, point.Z))
	return core.NewVec2(u, math.Acos(z)/math.Pi)
}
