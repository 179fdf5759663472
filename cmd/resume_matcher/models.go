package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/embedding"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the supported embedding models",
	RunE:  runModels,
}

var modelsFormat string

func init() {
	modelsCmd.Flags().StringVar(&modelsFormat, "format", "table", "Output format: table or json")
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, _ []string) error {
	models := embedding.Models()
	out := cmd.OutOrStdout()

	switch modelsFormat {
	case "json":
		return writeIndented(out, models)
	case "table":
		fmt.Fprintf(out, "%-28s %5s  %-8s %-7s\n", "MODEL", "DIMS", "FAMILY", "BACKEND")
		for _, m := range models {
			name := m.Name
			if strings.EqualFold(m.Name, appConfig.Model) {
				name += " *"
			}
			fmt.Fprintf(out, "%-28s %5d  %-8s %-7s\n", name, m.Dimension, m.Family, m.Backend)
		}
		return nil
	default:
		return fmt.Errorf("--format must be table or json, got %q", modelsFormat)
	}
}

// writeIndented writes v as indented JSON
func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
