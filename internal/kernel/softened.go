package kernel

import (
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

// Softened is the Plummer-softened Newtonian kernel: n² := r·r + ε², which is nonzero whenever
// ε > 0, so the contribution r · affectingMass · n²^(-3/2) is computed unconditionally with no
// self-interaction branch. Softened is itself "checked" in the sense that it never needs one.
type Softened[S vecmath.Float, V vecmath.Vector[S, V]] struct {
	// Epsilon is the softening length; EpsilonSquared caches ε² so Eval never recomputes it.
	Epsilon        S
	EpsilonSquared S
}

// NewSoftened builds a Softened kernel from a softening length.
func NewSoftened[S vecmath.Float, V vecmath.Vector[S, V]](epsilon S) Softened[S, V] {
	return Softened[S, V]{Epsilon: epsilon, EpsilonSquared: epsilon * epsilon}
}

func (k Softened[S, V]) Eval(affectedPos, affectingPos V, affectingMass S) V {
	r := affectingPos.Sub(affectedPos)
	n2 := vecmath.LengthSquared[S](r) + k.EpsilonSquared
	s := vecmath.RSqrt(n2)
	return r.Scale(affectingMass * s * s * s)
}

func (k Softened[S, V]) ComputePair(affected, affecting storage.PointMass[S, V]) (V, V) {
	r := affecting.Position.Sub(affected.Position)
	n2 := vecmath.LengthSquared[S](r) + k.EpsilonSquared
	s := vecmath.RSqrt(n2)
	invCube := s * s * s
	return r.Scale(affecting.Mass * invCube), r.Scale(-affected.Mass * invCube)
}

func (k Softened[S, V]) GPUSource(accumVar, affectedPos, affectingPos, affectingMass string) string {
	return gpuNewtonianSource(accumVar, affectedPos, affectingPos, affectingMass, true, float64(k.EpsilonSquared))
}
