package main

import (
	"github.com/jonathan/resume-screener/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract a structured candidate profile from a resume",
	Long:  "Extract contact details, skills, experience, education, certifications and languages from a resume as CandidateProfile JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	profile, err := engine.Profile(ctx, doc)
	if err != nil {
		return err
	}
	app.logger.Info("extracted profile",
		zap.String("document", doc.SourceID),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("positions", len(profile.Experience)),
		zap.Float64("confidence", profile.Confidence),
	)

	out := cmd.OutOrStdout()
	if app.jsonOutput() || !app.cfg.Verbose {
		return writeJSON(out, profile)
	}
	observability.NewPrinter(out).PrintProfile(profile)
	return nil
}
