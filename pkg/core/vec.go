package core

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the tolerance used by every approximate comparison in the renderer
const Epsilon = 1e-5

// ErrDegenerateVector is returned when normalizing a vector of zero length
var ErrDegenerateVector = errors.New("degenerate vector")

// AreClose reports whether two floats differ by less than Epsilon
func AreClose(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Vec represents a free direction in 3D space
type Vec struct {
	X, Y, Z float64
}

// Unit vectors along the three axes
var (
	VecX = Vec{1, 0, 0}
	VecY = Vec{0, 1, 0}
	VecZ = Vec{0, 0, 1}
)

// NewVec creates a new Vec
func NewVec(x, y, z float64) Vec {
	return Vec{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec) Add(other Vec) Vec {
	return Vec{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec) Subtract(other Vec) Vec {
	return Vec{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec) Multiply(scalar float64) Vec {
	return Vec{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Negate returns the opposite vector
func (v Vec) Negate() Vec {
	return Vec{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vec) Dot(other Vec) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec) Cross(other Vec) Vec {
	return Vec{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// SquaredNorm returns the squared length of the vector
func (v Vec) SquaredNorm() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Norm returns the length of the vector
func (v Vec) Norm() float64 {
	return math.Sqrt(v.SquaredNorm())
}

// Normalize returns a unit vector in the same direction.
// A zero-length vector yields ErrDegenerateVector.
func (v Vec) Normalize() (Vec, error) {
	norm := v.Norm()
	if norm == 0 {
		return Vec{}, fmt.Errorf("normalize %v: %w", v, ErrDegenerateVector)
	}
	return Vec{v.X / norm, v.Y / norm, v.Z / norm}, nil
}

// ToNormal converts the vector into a Normal with the same components
func (v Vec) ToNormal() Normal {
	return Normal{v.X, v.Y, v.Z}
}

// IsClose reports whether two vectors are equal within Epsilon
func (v Vec) IsClose(other Vec) bool {
	return AreClose(v.X, other.X) && AreClose(v.Y, other.Y) && AreClose(v.Z, other.Z)
}

func (v Vec) String() string {
	return fmt.Sprintf("Vec(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Point represents a position in 3D space
type Point struct {
	X, Y, Z float64
}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add translates the point by a vector
func (p Point) Add(v Vec) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// SubtractVec translates the point by the opposite of a vector
func (p Point) SubtractVec(v Vec) Point {
	return Point{p.X - v.X, p.Y - v.Y, p.Z - v.Z}
}

// Subtract returns the vector going from other to p
func (p Point) Subtract(other Point) Vec {
	return Vec{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// ToVec returns the vector from the origin to the point
func (p Point) ToVec() Vec {
	return Vec{p.X, p.Y, p.Z}
}

// IsClose reports whether two points are equal within Epsilon
func (p Point) IsClose(other Point) bool {
	return AreClose(p.X, other.X) && AreClose(p.Y, other.Y) && AreClose(p.Z, other.Z)
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Normal represents a surface normal. Normals are not kept normalized
// automatically; callers normalize when they need unit length.
type Normal struct {
	X, Y, Z float64
}

// NewNormal creates a new Normal
func NewNormal(x, y, z float64) Normal {
	return Normal{X: x, Y: y, Z: z}
}

// Negate returns the normal pointing the other way
func (n Normal) Negate() Normal {
	return Normal{-n.X, -n.Y, -n.Z}
}

// Multiply returns the normal scaled by a scalar
func (n Normal) Multiply(scalar float64) Normal {
	return Normal{n.X * scalar, n.Y * scalar, n.Z * scalar}
}

// SquaredNorm returns the squared length of the normal
func (n Normal) SquaredNorm() float64 {
	return n.X*n.X + n.Y*n.Y + n.Z*n.Z
}

// Norm returns the length of the normal
func (n Normal) Norm() float64 {
	return math.Sqrt(n.SquaredNorm())
}

// Normalize returns a unit normal, or ErrDegenerateVector for a zero normal
func (n Normal) Normalize() (Normal, error) {
	norm := n.Norm()
	if norm == 0 {
		return Normal{}, fmt.Errorf("normalize %v: %w", n, ErrDegenerateVector)
	}
	return Normal{n.X / norm, n.Y / norm, n.Z / norm}, nil
}

// ToVec converts the normal into a Vec with the same components
func (n Normal) ToVec() Vec {
	return Vec{n.X, n.Y, n.Z}
}

// IsClose reports whether two normals are equal within Epsilon
func (n Normal) IsClose(other Normal) bool {
	return AreClose(n.X, other.X) && AreClose(n.Y, other.Y) && AreClose(n.Z, other.Z)
}

func (n Normal) String() string {
	return fmt.Sprintf("Normal(%g, %g, %g)", n.X, n.Y, n.Z)
}

// Vec2 is a point on a parametric surface, (u, v) in [0,1]x[0,1]
type Vec2 struct {
	U, V float64
}

// NewVec2 creates a new surface coordinate
func NewVec2(u, v float64) Vec2 {
	return Vec2{U: u, V: v}
}

// IsClose reports whether two surface coordinates are equal within Epsilon
func (s Vec2) IsClose(other Vec2) bool {
	return AreClose(s.U, other.U) && AreClose(s.V, other.V)
}
