package engine

import (
	"context"
	"testing"

	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

func TestBarnesHutThetaZeroMatchesBruteForce(t *testing.T) {
	particles := randomParticles(60, 7)
	ordered := storage.NewOrdered(particles, pm.IsMassive)
	k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

	baseline, err := BruteForcePairs(context.Background(), Sequential{}, ordered, k)
	if err != nil {
		t.Fatal(err)
	}

	tree := storage.NewRootedOrthtree(ordered.Affecting())
	bh := BarnesHut[float64, vecmath.Vec3[float64]]{Theta: 0, Kernel: k}
	approx, err := bh.Compute(context.Background(), Sequential{}, ordered.Particles(), tree)
	if err != nil {
		t.Fatal(err)
	}

	for i := range baseline {
		if !closeEnough(baseline[i], approx[i], 1e-6) {
			t.Fatalf("particle %d: brute=%+v barnes-hut(theta=0)=%+v", i, baseline[i], approx[i])
		}
	}
}

// TestBarnesHutConvergence is scenario E3: 500 random points, Barnes-Hut vs brute force, bounded
// relative error.
func TestBarnesHutConvergence(t *testing.T) {
	particles := randomParticles(500, 11)
	ordered := storage.NewOrdered(particles, pm.IsMassive)
	k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

	baseline, err := BruteForcePairs(context.Background(), Sequential{}, ordered, k)
	if err != nil {
		t.Fatal(err)
	}

	tree := storage.NewRootedOrthtree(ordered.Affecting())
	bh := BarnesHut[float64, vecmath.Vec3[float64]]{Theta: 0.5, Kernel: k}
	approx, err := bh.Compute(context.Background(), Sequential{}, ordered.Particles(), tree)
	if err != nil {
		t.Fatal(err)
	}

	for i := range baseline {
		relErr := relativeError(baseline[i], approx[i])
		if relErr > 0.2 {
			t.Fatalf("particle %d: relative error %g exceeds bound", i, relErr)
		}
	}
}

func TestBarnesHutErrorGrowsWithTheta(t *testing.T) {
	particles := randomParticles(300, 13)
	ordered := storage.NewOrdered(particles, pm.IsMassive)
	k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

	baseline, err := BruteForcePairs(context.Background(), Sequential{}, ordered, k)
	if err != nil {
		t.Fatal(err)
	}
	tree := storage.NewRootedOrthtree(ordered.Affecting())

	thetas := []float64{0.1, 0.5, 0.9}
	var prevMaxErr float64
	for idx, theta := range thetas {
		bh := BarnesHut[float64, vecmath.Vec3[float64]]{Theta: theta, Kernel: k}
		approx, err := bh.Compute(context.Background(), Sequential{}, ordered.Particles(), tree)
		if err != nil {
			t.Fatal(err)
		}

		var maxErr float64
		for i := range baseline {
			if e := relativeError(baseline[i], approx[i]); e > maxErr {
				maxErr = e
			}
		}
		if idx > 0 && maxErr < prevMaxErr-1e-9 {
			t.Fatalf("theta=%g max error %g is lower than theta=%g max error %g; expected non-decreasing trend",
				theta, maxErr, thetas[idx-1], prevMaxErr)
		}
		prevMaxErr = maxErr
	}
}

func relativeError(baseline, approx vecmath.Vec3[float64]) float64 {
	denom := vecmath.Norm[float64](baseline)
	if denom == 0 {
		return 0
	}
	diff := baseline.Sub(approx)
	return vecmath.Norm[float64](diff) / denom
}
