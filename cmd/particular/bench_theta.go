package main

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/particular/internal/config"
	"github.com/san-kum/particular/internal/engine"
	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/scenario"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

var (
	thetaParticles int
	thetaSteps     int
)

func benchThetaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench-theta",
		Short: "Sweep Barnes-Hut theta against a brute-force baseline and chart the error",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThetaSweep(cmd)
		},
	}
	cmd.Flags().IntVar(&thetaParticles, "particles", 500, "particle count")
	cmd.Flags().IntVar(&thetaSteps, "steps", 10, "number of theta samples in [0, 1]")
	return cmd
}

func runThetaSweep(cmd *cobra.Command) error {
	ctx := ensureContext(cmd)

	cfg := &config.Config{NumParticles: thetaParticles, Dim: 3, Seed: 1, Distribution: "uniform_cube"}
	particles, err := scenario.Build(cfg)
	if err != nil {
		return err
	}

	ordered := storage.NewOrdered(particles, scenario.Particle3D.IsMassive)
	k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

	baseline, err := engine.BruteForcePairs(ctx, engine.Sequential{}, ordered, k)
	if err != nil {
		return err
	}

	tree := storage.NewRootedOrthtree(ordered.Affecting())
	errors := make([]float64, thetaSteps)
	thetas := make([]float64, thetaSteps)
	for i := 0; i < thetaSteps; i++ {
		theta := float64(i) / float64(thetaSteps-1)
		thetas[i] = theta

		bh := engine.BarnesHut[float64, vecmath.Vec3[float64]]{Theta: theta, Kernel: k}
		approx, err := bh.Compute(ctx, engine.Sequential{}, ordered.Particles(), tree)
		if err != nil {
			return err
		}
		errors[i] = maxRelativeError(baseline, approx)
	}

	fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render(fmt.Sprintf("barnes-hut convergence, n=%d", thetaParticles)))
	graph := asciigraph.Plot(errors,
		asciigraph.Height(12),
		asciigraph.Caption(fmt.Sprintf("max relative error, theta 0..1 in %d steps", thetaSteps)))
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func maxRelativeError[S vecmath.Float, V vecmath.Vector[S, V]](baseline, approx []V) float64 {
	var worst float64
	for i := range baseline {
		denom := math.Sqrt(float64(vecmath.LengthSquared[S](baseline[i])))
		if denom == 0 {
			continue
		}
		diff := baseline[i].Sub(approx[i])
		relErr := math.Sqrt(float64(vecmath.LengthSquared[S](diff))) / denom
		if relErr > worst {
			worst = relErr
		}
	}
	return worst
}
