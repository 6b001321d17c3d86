package storage

import "github.com/san-kum/particular/internal/vecmath"

// SimdBatch is one lane-width record of an array-of-SoA repacking of affecting particles: Pos[k]
// and Mass[k] together describe lane k's particle. Go has no portable hardware SIMD type, so the
// "SIMD" here is the same array-of-structs-of-arrays layout a real lane-width implementation
// would use, processed with a plain scalar loop instead of vector instructions (see DESIGN.md).
type SimdBatch[S vecmath.Float, V vecmath.Vector[S, V]] struct {
	Pos  []V
	Mass []S
}

// PackAffecting repacks affecting into ceil(len(affecting)/lanes) SimdBatch records. Tail lanes
// of the final record are padded with mass 0 (and the zero vector for position), which is safe
// because every kernel scales its contribution by the affecting particle's mass.
func PackAffecting[S vecmath.Float, V vecmath.Vector[S, V]](affecting []PointMass[S, V], lanes int) []SimdBatch[S, V] {
	if lanes <= 0 {
		panic("storage: lane width must be positive")
	}

	n := len(affecting)
	batchCount := (n + lanes - 1) / lanes
	batches := make([]SimdBatch[S, V], batchCount)

	for b := range batches {
		batch := SimdBatch[S, V]{
			Pos:  make([]V, lanes),
			Mass: make([]S, lanes),
		}
		for lane := 0; lane < lanes; lane++ {
			idx := b*lanes + lane
			if idx < n {
				batch.Pos[lane] = affecting[idx].Position
				batch.Mass[lane] = affecting[idx].Mass
			}
			// else: zero value V and mass 0, the documented padding.
		}
		batches[b] = batch
	}

	return batches
}
