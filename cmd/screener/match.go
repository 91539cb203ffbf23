package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match <file>",
	Short: "Score one resume against one or more requirements",
	Long: "Score a resume against requirement specs. With several --requirement flags the profile is " +
		"extracted once and scored against each posting in turn.",
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

var matchRequirements []string

func init() {
	matchCmd.Flags().StringArrayVarP(&matchRequirements, "requirement", "r", nil, "Requirement spec JSON (repeatable)")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	specs, err := app.loadRequirements(matchRequirements)
	if err != nil {
		return err
	}
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine, closeEngine, err := app.newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine()

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	if len(specs) == 1 {
		result, err := engine.Screen(ctx, doc, specs[0])
		if err != nil {
			if result.ID == "" {
				return err
			}
			app.logger.Warn("result not persisted", zap.Error(err))
		}
		if app.jsonOutput() {
			return writeJSON(out, result)
		}
		printer.PrintMatchResult(&result)
		_, _ = fmt.Fprintln(out, result.Explanation)
		return nil
	}

	results, err := engine.ScreenPostings(ctx, doc, specs)
	if err != nil {
		return err
	}
	if app.jsonOutput() {
		return writeJSON(out, results)
	}

	var failed []error
	for _, r := range results {
		if r.Result == nil {
			failed = append(failed, fmt.Errorf("%s: %w", r.RequirementID, r.Err))
			continue
		}
		if r.Err != nil {
			app.logger.Warn("result not persisted", zap.String("requirement", r.RequirementID), zap.Error(r.Err))
		}
		printer.PrintMatchResult(r.Result)
	}
	return errors.Join(failed...)
}
