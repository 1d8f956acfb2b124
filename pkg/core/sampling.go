package core

import "math"

// CreateONBFromZ builds an orthonormal basis whose third vector is the
// given unit normal. The construction is branch-free and stays stable at
// the poles (Duff et al., "Building an Orthonormal Basis, Revisited").
func CreateONBFromZ(normal Vec) (e1, e2, e3 Vec) {
	sign := math.Copysign(1.0, normal.Z)
	a := -1.0 / (sign + normal.Z)
	b := normal.X * normal.Y * a

	e1 = Vec{1.0 + sign*normal.X*normal.X*a, sign * b, -sign * normal.X}
	e2 = Vec{b, sign + normal.Y*normal.Y*a, -normal.Y}
	e3 = normal
	return e1, e2, e3
}

// SampleCosineHemisphere maps two uniform samples in [0,1] to a
// cosine-weighted direction in the hemisphere around a unit normal
func SampleCosineHemisphere(normal Vec, sample Vec2) Vec {
	e1, e2, e3 := CreateONBFromZ(normal)

	cosThetaSq := sample.U
	cosTheta := math.Sqrt(cosThetaSq)
	sinTheta := math.Sqrt(1.0 - cosThetaSq)
	sinPhi, cosPhi := math.Sincos(2.0 * math.Pi * sample.V)

	return e1.Multiply(cosPhi * sinTheta).
		Add(e2.Multiply(sinPhi * sinTheta)).
		Add(e3.Multiply(cosTheta))
}

// Reflect mirrors v about the unit normal n
func Reflect(v, n Vec) Vec {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
