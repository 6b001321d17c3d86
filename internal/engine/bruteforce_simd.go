package engine

import (
	"context"

	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

// BruteForceSIMD computes the same contract as BruteForce but over affecting particles already
// packed into storage.SimdBatch lanes (storage.PackAffecting). Go has no portable hardware SIMD
// type, so the "vectorised" inner loop here is a plain scalar loop over each batch's lanes, in the
// same ascending order PackAffecting produced them, reproducing BruteForce's accumulation order
// exactly.
func BruteForceSIMD[S vecmath.Float, V vecmath.Vector[S, V]](
	ctx context.Context,
	exec Executor,
	affected []storage.PointMass[S, V],
	batches []storage.SimdBatch[S, V],
	k kernel.Kernel[S, V],
) ([]V, error) {
	out := make([]V, len(affected))
	err := exec.Run(ctx, len(affected), func(i int) {
		pos := affected[i].Position
		var sum V
		for _, batch := range batches {
			for lane := range batch.Pos {
				sum = sum.Add(k.Eval(pos, batch.Pos[lane], batch.Mass[lane]))
			}
		}
		out[i] = sum
	})
	return out, err
}
