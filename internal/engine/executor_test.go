package engine

import (
	"context"
	"testing"

	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

// TestBackendAgreement checks that WorkStealing's parallel dispatch agrees with Sequential's,
// within tolerance, for the same algorithm.
func TestBackendAgreement(t *testing.T) {
	particles := randomParticles(120, 21)
	ordered := storage.NewOrdered(particles, pm.IsMassive)
	k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

	seqOut, err := BruteForcePairs(context.Background(), Sequential{}, ordered, k)
	if err != nil {
		t.Fatal(err)
	}
	parOut, err := BruteForcePairs(context.Background(), WorkStealing{Workers: 4}, ordered, k)
	if err != nil {
		t.Fatal(err)
	}

	for i := range seqOut {
		if !closeEnough(seqOut[i], parOut[i], 1e-9) {
			t.Fatalf("particle %d: sequential=%+v parallel=%+v", i, seqOut[i], parOut[i])
		}
	}
}

func TestWorkStealingCoversEveryIndexExactlyOnce(t *testing.T) {
	const n = 997 // prime, doesn't divide evenly across worker counts
	seen := make([]int, n)

	err := (WorkStealing{Workers: 8}).Run(context.Background(), n, func(i int) {
		seen[i]++
	})
	if err != nil {
		t.Fatal(err)
	}

	for i, count := range seen {
		if count != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, count)
		}
	}
}

func TestPermutationEquivalence(t *testing.T) {
	particles := randomParticles(30, 31)
	k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

	ordered := storage.NewOrdered(particles, pm.IsMassive)
	baseline, err := BruteForcePairs(context.Background(), Sequential{}, ordered, k)
	if err != nil {
		t.Fatal(err)
	}

	permuted := make([]pm, len(particles))
	perm := []int{}
	for i := len(particles) - 1; i >= 0; i-- {
		perm = append(perm, i)
	}
	for newIdx, oldIdx := range perm {
		permuted[newIdx] = particles[oldIdx]
	}

	orderedPermuted := storage.NewOrdered(permuted, pm.IsMassive)
	permutedOut, err := BruteForcePairs(context.Background(), Sequential{}, orderedPermuted, k)
	if err != nil {
		t.Fatal(err)
	}

	for newIdx, oldIdx := range perm {
		if !closeEnough(baseline[oldIdx], permutedOut[newIdx], 1e-9) {
			t.Fatalf("particle at original index %d (now %d): baseline=%+v permuted=%+v",
				oldIdx, newIdx, baseline[oldIdx], permutedOut[newIdx])
		}
	}
}
