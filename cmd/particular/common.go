package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/san-kum/particular/internal/config"
	"github.com/san-kum/particular/internal/runner"
)

func runAndReport(cmd *cobra.Command, cfg *config.Config) (*runner.Result, error) {
	return runner.Run(cmd.Context(), cfg)
}

func ensureContext(cmd *cobra.Command) context.Context {
	if cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
