package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// visibilityTMin is the distance from the observer below which occluders are ignored
const visibilityTMin = 1e-2

// World is a flat list of shapes intersected by linear scan
type World struct {
	shapes []Shape
}

// NewWorld creates a world containing the given shapes
func NewWorld(shapes ...Shape) *World {
	return &World{shapes: append([]Shape(nil), shapes...)}
}

// Add appends a shape to the world
func (w *World) Add(shape Shape) {
	w.shapes = append(w.shapes, shape)
}

// Shapes returns the shapes in insertion order
func (w *World) Shapes() []Shape {
	return w.shapes
}

// RayIntersection returns the closest hit across all shapes.
// Ties keep the shape that was added first.
func (w *World) RayIntersection(ray core.Ray) HitRecord {
	var closest HitRecord
	for _, shape := range w.shapes {
		hit := shape.RayIntersection(ray)
		if !hit.Hit {
			continue
		}
		if !closest.Hit || hit.T < closest.T {
			closest = hit
		}
	}
	return closest
}

// IsPointVisible reports whether nothing lies on the segment between observer and point
func (w *World) IsPointVisible(point, observer core.Point) bool {
	direction := point.Subtract(observer)
	norm := direction.Norm()
	if norm == 0 {
		return true
	}

	ray := core.Ray{
		Origin:    observer,
		Direction: direction,
		TMin:      visibilityTMin / norm,
		TMax:      1.0,
	}
	for _, shape := range w.shapes {
		if shape.RayIntersection(ray).Hit {
			return false
		}
	}
	return true
}
