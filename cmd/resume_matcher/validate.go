package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/schemas"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a match or ranking JSON file against its schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var validateSchema string

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "match", "Schema to validate against: match or ranking")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var name string
	switch validateSchema {
	case "match":
		name = schemafiles.MatchResult
	case "ranking":
		name = schemafiles.Ranking
	default:
		return fmt.Errorf("--schema must be match or ranking, got %q", validateSchema)
	}

	err := schemas.ValidateJSON(name, args[0])
	if err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid against %s\n", args[0], name)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprint(cmd.OutOrStdout(), validationErr.Error())
		return fmt.Errorf("%s does not match %s", args[0], name)
	}
	return err
}
