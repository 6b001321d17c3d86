// Package runner wires a config.Config's algorithm/backend/kernel selection into concrete
// engine, kernel and storage calls, so the CLI and its tests share one dispatch path instead of
// duplicating the algorithm matrix.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/particular/internal/compute"
	"github.com/san-kum/particular/internal/config"
	"github.com/san-kum/particular/internal/engine"
	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/scenario"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

// Result is one run's output: an acceleration per input particle (in input order) and the
// wall-clock time the compute call itself took.
type Result struct {
	Accelerations []vecmath.Vec3[float64]
	Elapsed       time.Duration
}

// Run builds particles for cfg's distribution and dispatches cfg's algorithm/backend/kernel
// combination, returning accelerations aligned with the generated particles' order.
func Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	particles, err := scenario.Build(cfg)
	if err != nil {
		return nil, err
	}
	return RunParticles(ctx, cfg, particles)
}

// RunParticles is Run with an explicit particle set, so callers (benchmarks, tests) can reuse
// one generated set across several configs.
func RunParticles(ctx context.Context, cfg *config.Config, particles []scenario.Particle3D) (*Result, error) {
	// Every path below computes in affecting-first order; reordered maps results back.
	reordered := storage.NewReordered(particles, scenario.Particle3D.IsMassive)
	particles = reordered.Reorder()

	if cfg.Backend == config.BackendGPU {
		res, err := runGPU(cfg, particles)
		if err != nil {
			return nil, err
		}
		res.Accelerations = storage.RestoreOrder(reordered, res.Accelerations)
		return res, nil
	}

	k, err := buildKernel(cfg)
	if err != nil {
		return nil, err
	}
	exec, err := buildExecutor(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var accel []vecmath.Vec3[float64]

	switch cfg.Algorithm {
	case config.AlgorithmBruteForce:
		ordered := storage.NewOrdered(particles, scenario.Particle3D.IsMassive)
		pairKernel, ok := k.(kernel.PairKernel[float64, vecmath.Vec3[float64]])
		if !ok {
			return nil, fmt.Errorf("runner: kernel %s does not support brute_force pairs", cfg.Kernel)
		}
		accel, err = engine.BruteForcePairs(ctx, exec, ordered, pairKernel)

	case config.AlgorithmBruteForceSIMD:
		ordered := storage.NewOrdered(particles, scenario.Particle3D.IsMassive)
		lanes := cfg.SimdLanes
		if lanes <= 0 {
			lanes = 8
		}
		batches := storage.PackAffecting(ordered.Affecting(), lanes)
		accel, err = engine.BruteForceSIMD(ctx, exec, ordered.Particles(), batches, k)

	case config.AlgorithmBarnesHut:
		ordered := storage.NewOrdered(particles, scenario.Particle3D.IsMassive)
		tree := storage.NewRootedOrthtree(ordered.Affecting())
		bh := engine.BarnesHut[float64, vecmath.Vec3[float64]]{Theta: cfg.Theta, Kernel: k}
		accel, err = bh.Compute(ctx, exec, ordered.Particles(), tree)

	default:
		return nil, fmt.Errorf("runner: unknown algorithm %q", cfg.Algorithm)
	}
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	return &Result{Accelerations: storage.RestoreOrder(reordered, accel), Elapsed: elapsed}, nil
}

func buildKernel(cfg *config.Config) (kernel.PairKernel[float64, vecmath.Vec3[float64]], error) {
	switch cfg.Kernel {
	case config.KernelNewtonian, "":
		return kernel.Newtonian[float64, vecmath.Vec3[float64]]{}, nil
	case config.KernelSoftened:
		return kernel.NewSoftened[float64, vecmath.Vec3[float64]](cfg.Softening), nil
	default:
		return nil, fmt.Errorf("runner: unknown kernel %q", cfg.Kernel)
	}
}

func buildExecutor(cfg *config.Config) (engine.Executor, error) {
	switch cfg.Backend {
	case config.BackendSequential, "":
		return engine.Sequential{}, nil
	case config.BackendParallel:
		return engine.WorkStealing{}, nil
	default:
		return nil, fmt.Errorf("runner: unknown backend %q", cfg.Backend)
	}
}

// runGPU dispatches the GPU brute-force path: 3D float32 only, per the GPU compute layout. It
// owns a fresh Backend per call rather than a shared one, since a Backend's pipeline cache is
// only worth keeping across calls that share an OpenGL context, and a CLI invocation doesn't.
func runGPU(cfg *config.Config, particles []scenario.Particle3D) (*Result, error) {
	if cfg.Algorithm != config.AlgorithmBruteForce {
		return nil, fmt.Errorf("runner: GPU backend only supports brute_force (got %q)", cfg.Algorithm)
	}
	gpuKernel, err := buildGPUKernel(cfg)
	if err != nil {
		return nil, err
	}

	ordered := storage.NewOrdered(particles, scenario.Particle3D.IsMassive)
	affecting := ordered.Affecting()
	all := ordered.Particles()

	affectedPos := make([]vecmath.Vec3[float32], len(all))
	affectedMass := make([]float32, len(all))
	for i, p := range all {
		affectedPos[i] = toVec3F32(p.Position)
		affectedMass[i] = float32(p.Mass)
	}
	affectingPos := make([]vecmath.Vec3[float32], len(affecting))
	affectingMass := make([]float32, len(affecting))
	for i, p := range affecting {
		affectingPos[i] = toVec3F32(p.Position)
		affectingMass[i] = float32(p.Mass)
	}

	backend := compute.NewBackend()
	if err := backend.Init(); err != nil {
		return nil, err
	}

	workgroup := cfg.WorkgroupSize
	if workgroup <= 0 {
		workgroup = 256
	}

	start := time.Now()
	out, err := backend.Dispatch(gpuKernel, compute.DispatchOptions{Strategy: compute.Global, WorkgroupSize: workgroup}, affectedPos, affectedMass, affectingPos, affectingMass)
	if err != nil {
		return nil, err
	}

	accel := make([]vecmath.Vec3[float64], len(out))
	for i, v := range out {
		accel[i] = vecmath.Vec3[float64]{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
	}
	return &Result{Accelerations: accel, Elapsed: time.Since(start)}, nil
}

func buildGPUKernel(cfg *config.Config) (kernel.GPUSource, error) {
	switch cfg.Kernel {
	case config.KernelNewtonian, "":
		return kernel.Newtonian[float32, vecmath.Vec3[float32]]{}, nil
	case config.KernelSoftened:
		return kernel.NewSoftened[float32, vecmath.Vec3[float32]](float32(cfg.Softening)), nil
	default:
		return nil, fmt.Errorf("runner: unknown kernel %q", cfg.Kernel)
	}
}

func toVec3F32(v vecmath.Vec3[float64]) vecmath.Vec3[float32] {
	return vecmath.Vec3[float32]{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
