package engine

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

type pm = storage.PointMass[float64, vecmath.Vec3[float64]]

func v3(x, y, z float64) vecmath.Vec3[float64] { return vecmath.Vec3[float64]{X: x, Y: y, Z: z} }

func randomParticles(n int, seed int64) []pm {
	rng := rand.New(rand.NewSource(seed))
	out := make([]pm, n)
	for i := range out {
		out[i] = storage.New[float64, vecmath.Vec3[float64]](
			v3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1),
			0.1+rng.Float64()*0.9,
		)
	}
	return out
}

func TestBruteForcePairsAgreesWithBruteForce(t *testing.T) {
	particles := randomParticles(40, 1)
	ordered := storage.NewOrdered(particles, pm.IsMassive)
	k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

	pairsOut, err := BruteForcePairs(context.Background(), Sequential{}, ordered, k)
	if err != nil {
		t.Fatal(err)
	}

	between := Between[[]pm, []pm]{Affected: ordered.Particles(), Affecting: ordered.Affecting()}
	bruteOut, err := BruteForce(context.Background(), Sequential{}, between, k)
	if err != nil {
		t.Fatal(err)
	}

	for i := range pairsOut {
		if !closeEnough(pairsOut[i], bruteOut[i], 1e-9) {
			t.Fatalf("particle %d: pairs=%+v brute=%+v", i, pairsOut[i], bruteOut[i])
		}
	}
}

func TestBruteForceSIMDAgreesWithBruteForcePairs(t *testing.T) {
	particles := randomParticles(50, 2)
	ordered := storage.NewOrdered(particles, pm.IsMassive)
	k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

	pairsOut, err := BruteForcePairs(context.Background(), Sequential{}, ordered, k)
	if err != nil {
		t.Fatal(err)
	}

	batches := storage.PackAffecting(ordered.Affecting(), 8)
	simdOut, err := BruteForceSIMD(context.Background(), Sequential{}, ordered.Particles(), batches, k)
	if err != nil {
		t.Fatal(err)
	}

	for i := range pairsOut {
		if !closeEnough(pairsOut[i], simdOut[i], 1e-9) {
			t.Fatalf("particle %d: pairs=%+v simd=%+v", i, pairsOut[i], simdOut[i])
		}
	}
}

func TestMasslessInertness(t *testing.T) {
	massive := randomParticles(10, 3)
	withMassless := append(append([]pm{}, massive...), storage.New[float64, vecmath.Vec3[float64]](v3(0.3, 0.1, -0.2), 0))

	k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

	orderedA := storage.NewOrdered(massive, pm.IsMassive)
	outA, err := BruteForcePairs(context.Background(), Sequential{}, orderedA, k)
	if err != nil {
		t.Fatal(err)
	}

	orderedB := storage.NewOrdered(withMassless, pm.IsMassive)
	outB, err := BruteForcePairs(context.Background(), Sequential{}, orderedB, k)
	if err != nil {
		t.Fatal(err)
	}

	for i := range outA {
		if !closeEnough(outA[i], outB[i], 1e-9) {
			t.Fatalf("massive particle %d changed after adding a massless particle: %+v vs %+v", i, outA[i], outB[i])
		}
	}
}

func closeEnough(a, b vecmath.Vec3[float64], tol float64) bool {
	d := a.Sub(b)
	return math.Sqrt(vecmath.LengthSquared[float64](d)) <= tol
}
