package storage_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

type treeParticle = storage.PointMass[float64, vecmath.Vec3[float64]]

func randomTreeParticles(n int, seed int64) []treeParticle {
	rng := rand.New(rand.NewSource(seed))
	out := make([]treeParticle, n)
	for i := range out {
		pos := vecmath.Vec3[float64]{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1, Z: rng.Float64()*2 - 1}
		out[i] = storage.New[float64, vecmath.Vec3[float64]](pos, 0.1+rng.Float64()*0.9)
	}
	return out
}

func collectLeafIndices(tree *storage.RootedOrthtree[float64, vecmath.Vec3[float64]]) []int {
	if tree.IsEmpty() {
		return nil
	}
	var indices []int
	var walk func(id storage.NodeID)
	walk = func(id storage.NodeID) {
		if tree.IsLeaf(id) {
			indices = append(indices, tree.LeafParticles(id)...)
			return
		}
		for _, child := range tree.Children(id) {
			if child != storage.EmptyNode {
				walk(child)
			}
		}
	}
	walk(tree.Root())
	return indices
}

func inBox(p, min, max vecmath.Vec3[float64]) bool {
	arr, lo, hi := p.ToArray(), min.ToArray(), max.ToArray()
	for k := range arr {
		if arr[k] < lo[k]-1e-9 || arr[k] > hi[k]+1e-9 {
			return false
		}
	}
	return true
}

var _ = Describe("RootedOrthtree", func() {
	It("places every particle in exactly one leaf", func() {
		particles := randomTreeParticles(300, 1)
		tree := storage.NewRootedOrthtree(particles)

		indices := collectLeafIndices(tree)
		Expect(indices).To(HaveLen(len(particles)))

		seen := make(map[int]bool, len(particles))
		for _, idx := range indices {
			Expect(seen[idx]).To(BeFalse(), "particle %d appeared in more than one leaf", idx)
			seen[idx] = true
		}
	})

	It("roots a bounding region containing every particle", func() {
		particles := randomTreeParticles(200, 2)
		tree := storage.NewRootedOrthtree(particles)

		Expect(tree.IsLeaf(tree.Root())).To(BeFalse(), "200 distinct random particles should not collapse to one leaf")
		min, max := tree.BBox(tree.Root())
		for i, p := range particles {
			Expect(inBox(p.Position, min, max)).To(BeTrue(), "particle %d at %+v outside root bbox [%+v, %+v]", i, p.Position, min, max)
		}
	})

	It("aggregates mass bottom-up to the total input mass", func() {
		particles := randomTreeParticles(150, 3)
		tree := storage.NewRootedOrthtree(particles)

		var total float64
		for _, p := range particles {
			total += p.Mass
		}

		root := tree.Data(tree.Root())
		Expect(root.TotalMass).To(BeNumerically("~", total, 1e-9))
	})

	It("coalesces exactly coincident particles into a single leaf instead of recursing forever", func() {
		particles := make([]treeParticle, 10)
		for i := range particles {
			particles[i] = storage.New[float64, vecmath.Vec3[float64]](vecmath.Vec3[float64]{X: 1, Y: 1, Z: 1}, 1.0)
		}
		tree := storage.NewRootedOrthtree(particles)

		indices := collectLeafIndices(tree)
		Expect(indices).To(HaveLen(len(particles)))

		root := tree.Data(tree.Root())
		Expect(root.TotalMass).To(BeNumerically("~", 10.0, 1e-9))
	})

	It("reports an empty tree for no affecting particles", func() {
		tree := storage.NewRootedOrthtree([]treeParticle{})
		Expect(tree.IsEmpty()).To(BeTrue())
	})
})
