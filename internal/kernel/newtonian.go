package kernel

import (
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

// Newtonian is the checked Newtonian gravitational acceleration kernel: r = affecting - affected,
// n² = r·r; the zero vector when n² == 0, otherwise r · affectingMass · n²^(-3/2). The reciprocal
// square root is computed once via vecmath.RSqrt and cubed, never dividing by n³ directly.
type Newtonian[S vecmath.Float, V vecmath.Vector[S, V]] struct{}

func (Newtonian[S, V]) Eval(affectedPos, affectingPos V, affectingMass S) V {
	r := affectingPos.Sub(affectedPos)
	n2 := vecmath.LengthSquared[S](r)
	if n2 == 0 {
		var zero V
		return zero
	}
	s := vecmath.RSqrt(n2)
	return r.Scale(affectingMass * s * s * s)
}

func (k Newtonian[S, V]) ComputePair(affected, affecting storage.PointMass[S, V]) (V, V) {
	r := affecting.Position.Sub(affected.Position)
	n2 := vecmath.LengthSquared[S](r)
	if n2 == 0 {
		var zero V
		return zero, zero
	}
	s := vecmath.RSqrt(n2)
	invCube := s * s * s
	return r.Scale(affecting.Mass * invCube), r.Scale(-affected.Mass * invCube)
}

func (Newtonian[S, V]) GPUSource(accumVar, affectedPos, affectingPos, affectingMass string) string {
	return gpuNewtonianSource(accumVar, affectedPos, affectingPos, affectingMass, false, 0)
}
