package engine

import (
	"context"

	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

// BruteForce computes, for every affected particle, the sum of k.Eval over every affecting
// particle, in ascending index order. Output has length len(between.Affected).
func BruteForce[S vecmath.Float, V vecmath.Vector[S, V]](
	ctx context.Context,
	exec Executor,
	between Between[[]storage.PointMass[S, V], []storage.PointMass[S, V]],
	k kernel.Kernel[S, V],
) ([]V, error) {
	affected, affecting := between.Affected, between.Affecting
	out := make([]V, len(affected))
	err := exec.Run(ctx, len(affected), func(i int) {
		out[i] = sumOver(affected[i].Position, affecting, k)
	})
	return out, err
}

func sumOver[S vecmath.Float, V vecmath.Vector[S, V]](affectedPos V, affecting []storage.PointMass[S, V], k kernel.Kernel[S, V]) V {
	var sum V
	for _, a := range affecting {
		sum = sum.Add(k.Eval(affectedPos, a.Position, a.Mass))
	}
	return sum
}

// BruteForcePairs computes the same result as BruteForce(ordered.Particles(), ordered.Affecting())
// but exploits ordered's affecting/non-affecting partition: pairs among the affecting particles
// are walked once per unordered pair (N(N-1)/2 instead of N(N-1)) and Newton's third law derives
// both particles' contributions from the shared term via k.ComputePair; non-affecting particles
// never contribute to others, so they're brute-forced against the affecting set directly, with no
// aliasing left to exploit there. The pairs walk writes two output slots per step, so it only runs
// on Sequential; any other executor gets BruteForce's form, split across its workers by affected
// index.
func BruteForcePairs[S vecmath.Float, V vecmath.Vector[S, V]](
	ctx context.Context,
	exec Executor,
	ordered *storage.Ordered[storage.PointMass[S, V]],
	k kernel.PairKernel[S, V],
) ([]V, error) {
	particles := ordered.Particles()
	affectingLen := ordered.AffectingLen()
	if _, ok := exec.(Sequential); !ok {
		between := Between[[]storage.PointMass[S, V], []storage.PointMass[S, V]]{Affected: particles, Affecting: particles[:affectingLen]}
		return BruteForce(ctx, exec, between, k)
	}
	out := make([]V, len(particles))

	for i := 0; i < affectingLen; i++ {
		for j := i + 1; j < affectingLen; j++ {
			contribI, contribJ := k.ComputePair(particles[i], particles[j])
			out[i] = out[i].Add(contribI)
			out[j] = out[j].Add(contribJ)
		}
	}

	affecting := particles[:affectingLen]
	nonAffecting := particles[affectingLen:]
	err := exec.Run(ctx, len(nonAffecting), func(i int) {
		out[affectingLen+i] = sumOver(particles[affectingLen+i].Position, affecting, k)
	})
	return out, err
}
