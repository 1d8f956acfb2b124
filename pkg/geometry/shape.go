package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// HitRecord contains information about a ray-shape intersection.
// Fields other than Hit are only meaningful when Hit is true.
type HitRecord struct {
	WorldPoint   core.Point  // Point of intersection in world space
	Normal       core.Normal // Surface normal in world space, facing against the ray
	SurfacePoint core.Vec2   // (u, v) surface coordinates in [0,1]²
	Ray          core.Ray    // The ray that produced this hit
	Shape        Shape       // The shape that was hit
	T            float64     // Parameter t along the ray
	Hit          bool
}

// IsClose compares two hit records within core.Epsilon
func (h HitRecord) IsClose(other HitRecord) bool {
	if h.Hit != other.Hit {
		return false
	}
	if !h.Hit {
		return true
	}
	return h.WorldPoint.IsClose(other.WorldPoint) &&
		h.Normal.IsClose(other.Normal) &&
		h.SurfacePoint.IsClose(other.SurfacePoint) &&
		h.Ray.IsClose(other.Ray) &&
		core.AreClose(h.T, other.T)
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	RayIntersection(ray core.Ray) HitRecord
	Material() *material.Material
}

// materialOrDefault substitutes the default material for nil
func materialOrDefault(m *material.Material) *material.Material {
	if m == nil {
		return material.DefaultMaterial()
	}
	return m
}
