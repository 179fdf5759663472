package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/logger"
)

var probeCmd = &cobra.Command{
	Use:   "probe [model...]",
	Short: "Check that embedding models can be loaded and reached",
	Long:  "Load each model and run one inference. Without arguments the configured model is probed.",
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = []string{appConfig.Model}
	}

	provider, cleanup, err := newProvider(cmd.Context(), appConfig, appLogger)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	failed := 0
	for _, name := range names {
		if err := provider.Probe(cmd.Context(), name); err != nil {
			failed++
			appLogger.Debug("probe failed", zap.String(logger.FieldModel, name), zap.Error(err))
			fmt.Fprintf(out, "FAIL  %s: %v\n", name, err)
			continue
		}
		info, _ := embedding.ResolveModel(name)
		fmt.Fprintf(out, "ok    %s (%d dims, %s)\n", info.Name, info.Dimension, info.Backend)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d model(s) unavailable", failed, len(names))
	}
	return nil
}
