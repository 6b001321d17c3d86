// Package vecmath is the generic vector algebra adapter consumed by the kernel, storage and
// engine layers. It exposes the minimal scalar and vector contract those layers are polymorphic
// over: componentwise arithmetic, dot product, norm and reciprocal square root. Lane packing for
// the SIMD path lives in storage.PackAffecting, not here.
package vecmath

import "math"

// Float is the scalar type particles and vectors are built on.
type Float interface {
	~float32 | ~float64
}

// Sqrt returns the square root of x, dispatching to the right precision of math.Sqrt.
func Sqrt[S Float](x S) S {
	return S(math.Sqrt(float64(x)))
}

// RSqrt returns 1/sqrt(x). Every kernel in this module goes through this single reciprocal
// square root instead of dividing by x*sqrt(x) so there is one rounding boundary to reason about.
func RSqrt[S Float](x S) S {
	return 1 / Sqrt(x)
}

// FMA returns a*b+c, fused where the platform's math.FMA is available. float32 operands are
// promoted to float64 for the fused step and truncated back, which is the precision the
// reference shader's fma(a, b, c) call is modelling.
func FMA[S Float](a, b, c S) S {
	return S(math.FMA(float64(a), float64(b), float64(c)))
}
