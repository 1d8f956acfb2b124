package core

import "math"

// DefaultTMin keeps rays from re-hitting the surface they start on
const DefaultTMin = 1e-5

// Ray represents a ray of light with its valid parametric range and bounce depth
type Ray struct {
	Origin    Point
	Direction Vec
	TMin      float64
	TMax      float64
	Depth     int // Number of bounces that produced this ray
}

// NewRay creates a ray with the default range (DefaultTMin, +Inf) and depth 0
func NewRay(origin Point, direction Vec) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TMin:      DefaultTMin,
		TMax:      math.Inf(1),
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transform returns the ray mapped by t; range and depth are preserved
func (r Ray) Transform(t Transformation) Ray {
	return Ray{
		Origin:    t.ApplyPoint(r.Origin),
		Direction: t.ApplyVec(r.Direction),
		TMin:      r.TMin,
		TMax:      r.TMax,
		Depth:     r.Depth,
	}
}

// IsClose compares origin and direction within Epsilon
func (r Ray) IsClose(other Ray) bool {
	return r.Origin.IsClose(other.Origin) && r.Direction.IsClose(other.Direction)
}
