package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var screenCmd = &cobra.Command{
	Use:   "screen <file|dir>...",
	Short: "Screen a batch of resumes against a requirement and rank them",
	Long: "Screen every resume given, or every file in a given directory, against one requirement. " +
		"Documents that cannot be read are reported as failures without stopping the batch.",
	Args: cobra.MinimumNArgs(1),
	RunE: runScreen,
}

var (
	screenRequirement string
	screenPassedOnly  bool
)

func init() {
	screenCmd.Flags().StringVarP(&screenRequirement, "requirement", "r", "", "Requirement spec JSON")
	screenCmd.Flags().BoolVar(&screenPassedOnly, "passed-only", false, "Only list candidates at or above the pass threshold")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	var reqPaths []string
	if screenRequirement != "" {
		reqPaths = []string{screenRequirement}
	}
	specs, err := app.loadRequirements(reqPaths)
	if err != nil {
		return err
	}
	spec := specs[0]

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	docs, err := readDocuments(paths)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine, closeEngine, err := app.newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine()

	batch, err := engine.ScreenBatch(ctx, docs, spec)
	if err != nil {
		return err
	}
	app.logger.Info("batch screened",
		zap.String("requirement", spec.ID),
		zap.Int("documents", len(docs)),
		zap.Int("ranked", len(batch.Ranked)),
		zap.Int("failures", len(batch.Failures)),
	)

	if screenPassedOnly {
		passed := batch.Ranked[:0]
		for _, r := range batch.Ranked {
			if r.Passed {
				passed = append(passed, r)
			}
		}
		batch.Ranked = passed
	}

	out := cmd.OutOrStdout()
	if app.jsonOutput() {
		return writeJSON(out, batch)
	}

	printer := observability.NewPrinter(out)
	printer.PrintRankedResults(&batch.RankedResults)
	failures := make(map[string]string, len(batch.Failures))
	for _, f := range batch.Failures {
		failures[f.DocumentID] = f.Message
	}
	printer.PrintFailures(failures)
	return nil
}

// expandPaths replaces each directory argument with the regular files directly inside it
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no documents found")
	}
	return paths, nil
}
