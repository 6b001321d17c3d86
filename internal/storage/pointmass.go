// Package storage holds the particle collections the engine computes over: a flat slice, an
// Ordered view partitioning massive particles ahead of massless ones, a Reordered view that owns
// the permutation back to the caller's order, and a RootedOrthtree used by the Barnes-Hut
// algorithm.
package storage

import "github.com/san-kum/particular/internal/vecmath"

// PointMass is the canonical particle record: a position and a gravitational parameter mu
// (G times mass). A particle is massive iff Mass > 0; Mass == 0 particles sink interactions but
// never emit them. NaN mass is caller error and is not diagnosed here.
type PointMass[S vecmath.Float, V vecmath.Vector[S, V]] struct {
	Position V
	Mass     S
}

// New builds a PointMass from a position and mass.
func New[S vecmath.Float, V vecmath.Vector[S, V]](position V, mass S) PointMass[S, V] {
	return PointMass[S, V]{Position: position, Mass: mass}
}

// IsMassive reports whether the particle affects others.
func (p PointMass[S, V]) IsMassive() bool {
	return p.Mass > 0
}
