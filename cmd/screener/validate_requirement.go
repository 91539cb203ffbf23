package main

import (
	"fmt"

	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/spf13/cobra"
)

var validateRequirementCmd = &cobra.Command{
	Use:   "validate-requirement <file>...",
	Short: "Check requirement specs against the schema and vocabulary",
	Long: "Validate one or more requirement JSON files: schema shape, positive weights, known strategies " +
		"and skill names that resolve to the vocabulary.",
	Args: cobra.MinimumNArgs(1),
	RunE: runValidateRequirement,
}

func init() {
	rootCmd.AddCommand(validateRequirementCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runValidateRequirement(cmd *cobra.Command, args []string) error {
	specs, err := app.loadRequirements(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, spec := range specs {
		if _, ok := matching.Lookup(spec.EffectiveStrategy()); !ok {
			return fmt.Errorf("%s: strategy %q is not available (known: %v)", args[i], spec.EffectiveStrategy(), matching.Strategies())
		}
		if app.cfg.Verbose {
			observability.NewPrinter(out).PrintRequirement(spec)
			continue
		}
		fmt.Fprintf(out, "✓ %s is valid (%d required, %d preferred, strategy %s)\n",
			args[i], len(spec.RequiredSkills), len(spec.PreferredSkills), spec.EffectiveStrategy())
	}
	return nil
}
