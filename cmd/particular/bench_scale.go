package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/particular/internal/config"
	"github.com/san-kum/particular/internal/engine"
	"github.com/san-kum/particular/internal/kernel"
	"github.com/san-kum/particular/internal/scenario"
	"github.com/san-kum/particular/internal/storage"
	"github.com/san-kum/particular/internal/vecmath"
)

func benchScaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench-scale",
		Short: "Sweep particle count, comparing sequential and parallel brute-force-pairs timing live",
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newScaleModel(ensureContext(cmd))
			program := tea.NewProgram(model)
			_, err := program.Run()
			return err
		},
	}
}

var scaleSteps = []int{100, 500, 1000, 5000, 10000}

type scaleResult struct {
	n          int
	sequential time.Duration
	parallel   time.Duration
}

type scaleStepDoneMsg scaleResult

type scaleModel struct {
	ctx     context.Context
	step    int
	results []scaleResult
	done    bool
}

func newScaleModel(ctx context.Context) scaleModel {
	return scaleModel{ctx: ctx}
}

func (m scaleModel) Init() tea.Cmd {
	return runScaleStep(m.ctx, scaleSteps[0])
}

func runScaleStep(ctx context.Context, n int) tea.Cmd {
	return func() tea.Msg {
		cfg := &config.Config{NumParticles: n, Dim: 3, Seed: 1, Distribution: "uniform_cube"}
		particles, err := scenario.Build(cfg)
		if err != nil {
			return scaleStepDoneMsg{n: n}
		}

		ordered := storage.NewOrdered(particles, scenario.Particle3D.IsMassive)
		k := kernel.Newtonian[float64, vecmath.Vec3[float64]]{}

		seqStart := time.Now()
		_, _ = engine.BruteForcePairs(ctx, engine.Sequential{}, ordered, k)
		seqElapsed := time.Since(seqStart)

		parStart := time.Now()
		_, _ = engine.BruteForcePairs(ctx, engine.WorkStealing{}, ordered, k)
		parElapsed := time.Since(parStart)

		return scaleStepDoneMsg{n: n, sequential: seqElapsed, parallel: parElapsed}
	}
}

func (m scaleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case scaleStepDoneMsg:
		m.results = append(m.results, scaleResult(msg))
		m.step++
		if m.step >= len(scaleSteps) {
			m.done = true
			return m, tea.Quit
		}
		return m, runScaleStep(m.ctx, scaleSteps[m.step])
	}
	return m, nil
}

func (m scaleModel) View() string {
	out := headerStyle.Render("brute-force-pairs: sequential vs parallel") + "\n"
	for _, r := range m.results {
		out += fmt.Sprintf("  n=%-7d sequential=%-12s parallel=%-12s\n", r.n, r.sequential, r.parallel)
	}
	if !m.done {
		out += labelStyle.Render(fmt.Sprintf("  running n=%d...\n", nextStep(m.step)))
	}
	return out
}

func nextStep(step int) int {
	if step >= len(scaleSteps) {
		return scaleSteps[len(scaleSteps)-1]
	}
	return scaleSteps[step]
}
