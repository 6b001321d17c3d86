// Package engine dispatches interaction kernels over particle storage: brute force, brute force
// SIMD-batched, and Barnes-Hut, each runnable sequentially or across a work-stealing pool.
package engine

// Between pairs an affected collection with the affecting collection acting on it, mirroring the
// upstream (affected, affecting) convention: affected receives contributions, affecting
// produces them. The two collections may be the same slice; BruteForce still evaluates every
// (affected, affecting) pair then. The aliased case is exploited by BruteForcePairs, which takes a
// storage.Ordered instead of a Between.
type Between[A, G any] struct {
	Affected  A
	Affecting G
}
