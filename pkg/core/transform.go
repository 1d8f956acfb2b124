package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInconsistentTransform is returned when a matrix and its declared
// inverse do not multiply to the identity
var ErrInconsistentTransform = errors.New("inconsistent transformation")

// MatrixFromRows builds a matrix from its rows, as written on paper
func MatrixFromRows(rows [4][4]float64) mgl64.Mat4 {
	return mgl64.Mat4FromRows(
		mgl64.Vec4(rows[0]),
		mgl64.Vec4(rows[1]),
		mgl64.Vec4(rows[2]),
		mgl64.Vec4(rows[3]),
	)
}

// matricesClose compares every element of two matrices within Epsilon
func matricesClose(a, b mgl64.Mat4) bool {
	return a.ApproxFuncEqual(b, AreClose)
}

// Transformation is an affine transformation stored together with its
// inverse, so that inverting never requires a matrix inversion
type Transformation struct {
	M    mgl64.Mat4
	InvM mgl64.Mat4
}

// IdentityTransformation returns the transformation that leaves everything unchanged
func IdentityTransformation() Transformation {
	return Transformation{M: mgl64.Ident4(), InvM: mgl64.Ident4()}
}

// NewTransformation builds a transformation from a matrix and its inverse.
// The pair is checked and ErrInconsistentTransform is returned if m*invm
// is not the identity.
func NewTransformation(m, invm mgl64.Mat4) (Transformation, error) {
	t := Transformation{M: m, InvM: invm}
	if !t.IsConsistent() {
		return Transformation{}, fmt.Errorf("new transformation: %w", ErrInconsistentTransform)
	}
	return t, nil
}

// NewTransformationFromMatrix inverts m once and pairs it with its inverse.
// A singular matrix returns ErrInconsistentTransform.
func NewTransformationFromMatrix(m mgl64.Mat4) (Transformation, error) {
	if math.Abs(m.Det()) < Epsilon*Epsilon {
		return Transformation{}, fmt.Errorf("singular matrix: %w", ErrInconsistentTransform)
	}
	return NewTransformation(m, m.Inv())
}

// IsConsistent reports whether M*InvM is the identity within Epsilon
func (t Transformation) IsConsistent() bool {
	return matricesClose(t.M.Mul4(t.InvM), mgl64.Ident4())
}

// IsClose reports whether both matrices of two transformations are close
func (t Transformation) IsClose(other Transformation) bool {
	return matricesClose(t.M, other.M) && matricesClose(t.InvM, other.InvM)
}

// Inverse returns the inverse transformation by swapping the two matrices
func (t Transformation) Inverse() Transformation {
	return Transformation{M: t.InvM, InvM: t.M}
}

// Compose returns the transformation t*other: other is applied first.
func (t Transformation) Compose(other Transformation) Transformation {
	return Transformation{
		M:    t.M.Mul4(other.M),
		InvM: other.InvM.Mul4(t.InvM),
	}
}

// ApplyPoint applies the full affine map to a point
func (t Transformation) ApplyPoint(p Point) Point {
	h := t.M.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	if h[3] == 1 {
		return Point{h[0], h[1], h[2]}
	}
	return Point{h[0] / h[3], h[1] / h[3], h[2] / h[3]}
}

// ApplyVec applies the linear part of the transformation to a vector
func (t Transformation) ApplyVec(v Vec) Vec {
	h := t.M.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return Vec{h[0], h[1], h[2]}
}

// ApplyNormal transforms a normal using the transpose of the inverse matrix
func (t Transformation) ApplyNormal(n Normal) Normal {
	h := t.InvM.Transpose().Mul4x1(mgl64.Vec4{n.X, n.Y, n.Z, 0})
	return Normal{h[0], h[1], h[2]}
}

// Translation returns a rigid translation by v
func Translation(v Vec) Transformation {
	return Transformation{
		M:    mgl64.Translate3D(v.X, v.Y, v.Z),
		InvM: mgl64.Translate3D(-v.X, -v.Y, -v.Z),
	}
}

// Scaling returns an axis-aligned scaling. All components of v must be non-zero.
func Scaling(v Vec) Transformation {
	return Transformation{
		M:    mgl64.Scale3D(v.X, v.Y, v.Z),
		InvM: mgl64.Scale3D(1/v.X, 1/v.Y, 1/v.Z),
	}
}

// RotationX returns a counter-clockwise rotation around the x axis (angle in radians)
func RotationX(angle float64) Transformation {
	return Transformation{
		M:    mgl64.HomogRotate3DX(angle),
		InvM: mgl64.HomogRotate3DX(-angle),
	}
}

// RotationY returns a counter-clockwise rotation around the y axis (angle in radians)
func RotationY(angle float64) Transformation {
	return Transformation{
		M:    mgl64.HomogRotate3DY(angle),
		InvM: mgl64.HomogRotate3DY(-angle),
	}
}

// RotationZ returns a counter-clockwise rotation around the z axis (angle in radians)
func RotationZ(angle float64) Transformation {
	return Transformation{
		M:    mgl64.HomogRotate3DZ(angle),
		InvM: mgl64.HomogRotate3DZ(-angle),
	}
}
