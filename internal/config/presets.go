package config

// Presets mirrors the project's named-config table, repointed at common N-body benchmark
// scenarios instead of dynamical-system models.
var Presets = map[string]*Config{
	"two_body": {
		Algorithm: AlgorithmBruteForce, Backend: BackendSequential, Kernel: KernelNewtonian,
		NumParticles: 2, Dim: 3, Seed: 1, Distribution: "two_body",
	},
	"solar_system": {
		Algorithm: AlgorithmBruteForce, Backend: BackendSequential, Kernel: KernelNewtonian,
		NumParticles: 3, Dim: 3, Seed: 1, Distribution: "solar_system",
	},
	"barnes_hut_1k": {
		Algorithm: AlgorithmBarnesHut, Backend: BackendParallel, Kernel: KernelSoftened,
		NumParticles: 1000, Dim: 3, Theta: 0.5, Softening: 1e-3, Seed: 1, Distribution: "uniform_cube",
	},
	"barnes_hut_100k": {
		Algorithm: AlgorithmBarnesHut, Backend: BackendParallel, Kernel: KernelSoftened,
		NumParticles: 100_000, Dim: 3, Theta: 0.7, Softening: 1e-3, Seed: 1, Distribution: "plummer",
	},
	"gpu_10k": {
		Algorithm: AlgorithmBruteForce, Backend: BackendGPU, Kernel: KernelSoftened,
		NumParticles: 10_000, Dim: 3, Softening: 1e-3, WorkgroupSize: 256, Seed: 1, Distribution: "uniform_cube",
	},
}

// GetPreset returns a copy of the named preset, or nil if it doesn't exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns every preset name.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
