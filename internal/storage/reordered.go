package storage

// Reordered owns the caller's original slice alongside an Ordered copy of it, plus the
// permutation bridging the two, so a result computed over the Ordered copy can be restored to
// the caller's original order.
type Reordered[P any] struct {
	// Unordered is the original, caller-owned slice.
	Unordered []P

	ordered     *Ordered[P]
	isAffecting func(P) bool
	// permutation[i] is the index into Unordered that produced ordered.Particles()[i].
	permutation []int
}

// NewReordered partitions unordered by isAffecting (the common case: mass > 0) while recording
// the permutation needed to invert the reordering later.
func NewReordered[P any](unordered []P, isAffecting func(P) bool) *Reordered[P] {
	permutation := make([]int, 0, len(unordered))
	for i, p := range unordered {
		if isAffecting(p) {
			permutation = append(permutation, i)
		}
	}
	affectingLen := len(permutation)
	for i, p := range unordered {
		if !isAffecting(p) {
			permutation = append(permutation, i)
		}
	}

	particles := make([]P, len(unordered))
	for newIdx, origIdx := range permutation {
		particles[newIdx] = unordered[origIdx]
	}

	return &Reordered[P]{
		Unordered: unordered,
		ordered: &Ordered[P]{
			affectingLen: affectingLen,
			particles:    particles,
		},
		isAffecting: isAffecting,
		permutation: permutation,
	}
}

// Ordered returns the underlying Ordered storage.
func (r *Reordered[P]) Ordered() *Ordered[P] { return r.ordered }

// AffectingLen returns the number of affecting particles.
func (r *Reordered[P]) AffectingLen() int { return r.ordered.AffectingLen() }

// Affecting returns the affecting particles, in Reordered (not caller) order.
func (r *Reordered[P]) Affecting() []P { return r.ordered.Affecting() }

// NonAffecting returns the non-affecting particles, in Reordered order.
func (r *Reordered[P]) NonAffecting() []P { return r.ordered.NonAffecting() }

// Reorder returns the particles in the internal Ordered order (affecting first).
func (r *Reordered[P]) Reorder() []P { return r.ordered.Particles() }

// RestoreOrder maps a result slice computed over Reorder()'s order back to Unordered's order.
// len(ordered) must equal len(r.Unordered).
func RestoreOrder[P any, U any](r *Reordered[P], ordered []U) []U {
	restored := make([]U, len(ordered))
	for newIdx, origIdx := range r.permutation {
		restored[origIdx] = ordered[newIdx]
	}
	return restored
}
