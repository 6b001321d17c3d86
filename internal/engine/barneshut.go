package engine

import (
	"context"

	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

// BarnesHut approximates BruteForce's result by traversing a storage.RootedOrthtree instead of
// every affecting particle: a node is treated as a single point mass at its center of mass once
// it is far enough away relative to its bounding box width, controlled by Theta; otherwise the
// traversal descends into its children. Theta == 0 degenerates to the exact brute-force result
// (every internal node is always descended into).
type BarnesHut[S vecmath.Float, V vecmath.Vector[S, V]] struct {
	Theta  S
	Kernel kernel.Kernel[S, V]
}

// Compute evaluates the approximation for every affected particle against tree.
func (bh BarnesHut[S, V]) Compute(
	ctx context.Context,
	exec Executor,
	affected []storage.PointMass[S, V],
	tree *storage.RootedOrthtree[S, V],
) ([]V, error) {
	out := make([]V, len(affected))
	err := exec.Run(ctx, len(affected), func(i int) {
		out[i] = bh.computeOne(tree, affected[i].Position)
	})
	return out, err
}

func (bh BarnesHut[S, V]) computeOne(tree *storage.RootedOrthtree[S, V], affectedPos V) V {
	var sum V
	if tree.IsEmpty() {
		return sum
	}

	stack := []storage.NodeID{tree.Root()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		agg := tree.Data(id)
		r := agg.CenterOfMass.Sub(affectedPos)
		d2 := vecmath.LengthSquared[S](r)
		if d2 == 0 {
			// Either affectedPos is itself the sole occupant of this node (self-interaction,
			// excluded) or the node is empty (TotalMass == 0 contributes nothing either way).
			continue
		}

		if !tree.IsLeaf(id) {
			width := tree.BoxWidth(id)
			if bh.Theta*bh.Theta*d2 < width*width {
				for _, child := range tree.Children(id) {
					if child != storage.EmptyNode {
						stack = append(stack, child)
					}
				}
				continue
			}
		}

		sum = sum.Add(bh.Kernel.Eval(affectedPos, agg.CenterOfMass, agg.TotalMass))
	}
	return sum
}
