// Package kernel implements the pairwise interaction laws the engine evaluates: the Newtonian
// gravitational acceleration kernel (checked: self-interaction safe) and its softened variant,
// plus the GLSL fragments the GPU backend compiles into a compute shader. There is no unchecked
// kernel type.
package kernel

import (
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

// Kernel evaluates the contribution one affecting particle makes to one affected position. It is
// the scalar overload described in the interaction kernel contract; SIMD callers batch it across
// lanes and the GPU backend compiles an equivalent GLSL expression instead of calling this.
type Kernel[S vecmath.Float, V vecmath.Vector[S, V]] interface {
	Eval(affectedPos, affectingPos V, affectingMass S) V
}

// PairKernel additionally supports the brute-force-pairs optimisation: computing both directions
// of an unordered (affected, affecting) pair from one shared r and one shared reciprocal-cube
// term, instead of calling Eval twice. Only kernels anti-symmetric in their arguments (Newtonian
// acceleration, with or without softening) can implement this.
type PairKernel[S vecmath.Float, V vecmath.Vector[S, V]] interface {
	Kernel[S, V]

	// ComputePair returns (contribution to affected from affecting, contribution to affecting
	// from affected).
	ComputePair(affected, affecting storage.PointMass[S, V]) (V, V)
}

// GPUSource returns the GLSL expression computing a single kernel contribution, for splicing
// into the compute shader template. accumVar is the name of the vec3 the expression should add
// into; affectedPos, affectingPos and affectingMass name the shader-side inputs.
type GPUSource interface {
	GPUSource(accumVar, affectedPos, affectingPos, affectingMass string) string
}
