// Command particular benchmarks and demonstrates the interaction engine: running a single
// configuration, listing presets, or sweeping theta / particle count to chart how the algorithm
// matrix trades accuracy for speed.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/particular/internal/config"
)

var (
	cfgPath string
	preset  string

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "particular",
		Short: "Benchmark and demo the N-body interaction engine",
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML run config")
	root.PersistentFlags().StringVar(&preset, "preset", "", "named preset (see 'particular presets')")

	root.AddCommand(runCmd())
	root.AddCommand(presetsCmd())
	root.AddCommand(benchThetaCmd())
	root.AddCommand(benchScaleCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	switch {
	case cfgPath != "":
		return config.Load(cfgPath)
	case preset != "":
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (see 'particular presets')", preset)
		}
		return cfg, nil
	default:
		return config.DefaultConfig(), nil
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one configuration and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			result, err := runAndReport(cmd, cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render("particular run"))
			printField(cmd, "algorithm", string(cfg.Algorithm))
			printField(cmd, "backend", string(cfg.Backend))
			printField(cmd, "kernel", string(cfg.Kernel))
			printField(cmd, "particles", fmt.Sprintf("%d", cfg.NumParticles))
			printField(cmd, "elapsed", result.Elapsed.String())

			n := len(result.Accelerations)
			shown := min(n, 3)
			for i := 0; i < shown; i++ {
				a := result.Accelerations[i]
				fmt.Fprintf(cmd.OutOrStdout(), "  accel[%d] = (%.6g, %.6g, %.6g)\n", i, a.X, a.Y, a.Z)
			}
			if n > shown {
				fmt.Fprintf(cmd.OutOrStdout(), "  ... %d more\n", n-shown)
			}
			return nil
		},
	}
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List named presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), headerStyle.Render("available presets"))
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s/%s/%s  n=%d\n",
					labelStyle.Render(name), p.Algorithm, p.Backend, p.Kernel, p.NumParticles)
			}
			return nil
		},
	}
}

func printField(cmd *cobra.Command, label, value string) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}
