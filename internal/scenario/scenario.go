// Package scenario builds particle sets for the benchmark/demo CLI from a config.Config's
// distribution name, the way the project's old preset system built initial dynamical-system
// states from a model name.
package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/particular/internal/config"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

// Particle3D is the concrete particle type every scenario and CLI command works in: 3D, float64.
type Particle3D = storage.PointMass[float64, vecmath.Vec3[float64]]

// Build returns NumParticles particles laid out according to cfg.Distribution, deterministic in
// cfg.Seed.
func Build(cfg *config.Config) ([]Particle3D, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	switch cfg.Distribution {
	case "two_body":
		return twoBody(), nil
	case "solar_system":
		return solarSystem(), nil
	case "uniform_cube":
		return uniformCube(rng, cfg.NumParticles), nil
	case "plummer":
		return plummer(rng, cfg.NumParticles), nil
	default:
		return nil, fmt.Errorf("scenario: unknown distribution %q", cfg.Distribution)
	}
}

func twoBody() []Particle3D {
	return []Particle3D{
		storage.New[float64, vecmath.Vec3[float64]](vecmath.Vec3[float64]{X: 0, Y: 0, Z: 0}, 1.0),
		storage.New[float64, vecmath.Vec3[float64]](vecmath.Vec3[float64]{X: 1, Y: 0, Z: 0}, 1.0),
	}
}

// solarSystem returns Sun, Earth and Jupiter with masses in solar-mass units and positions in
// AU-scaled placeholders, under this module's universal convention of G = 1 (no kernel anywhere
// scales by a gravitational constant). That convention means the resulting accelerations are not
// in true AU/solar-mass/year units — reproducing those would need G = 4π² folded into every
// kernel's Eval/ComputePair, which this module does not do. The momentum-conservation and sign
// checks that exercise this scenario hold under any positive G, so they don't depend on the value
// chosen here.
func solarSystem() []Particle3D {
	return []Particle3D{
		storage.New[float64, vecmath.Vec3[float64]](vecmath.Vec3[float64]{X: 0, Y: 0, Z: 0}, 1.0),
		storage.New[float64, vecmath.Vec3[float64]](vecmath.Vec3[float64]{X: 1, Y: 0, Z: 0}, 3.0027e-6),
		storage.New[float64, vecmath.Vec3[float64]](vecmath.Vec3[float64]{X: 5.2, Y: 0, Z: 0}, 9.54588e-4),
	}
}

func uniformCube(rng *rand.Rand, n int) []Particle3D {
	out := make([]Particle3D, n)
	for i := range out {
		pos := vecmath.Vec3[float64]{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}
		mass := 0.1 + rng.Float64()*0.9
		out[i] = storage.New[float64, vecmath.Vec3[float64]](pos, mass)
	}
	return out
}

// plummer samples a Plummer sphere via the standard inverse-CDF construction, unit total mass
// and unit scale radius split evenly across n particles.
func plummer(rng *rand.Rand, n int) []Particle3D {
	out := make([]Particle3D, n)
	massPer := 1.0 / float64(n)
	for i := range out {
		radius := 1.0 / math.Sqrt(math.Pow(rng.Float64(), -2.0/3.0)-1.0)

		costheta := rng.Float64()*2 - 1
		sintheta := math.Sqrt(1 - costheta*costheta)
		phi := rng.Float64() * 2 * math.Pi

		pos := vecmath.Vec3[float64]{
			X: radius * sintheta * math.Cos(phi),
			Y: radius * sintheta * math.Sin(phi),
			Z: radius * costheta,
		}
		out[i] = storage.New[float64, vecmath.Vec3[float64]](pos, massPer)
	}
	return out
}
