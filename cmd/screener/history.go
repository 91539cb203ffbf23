package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results <requirement-id>",
	Short: "List stored match results for a requirement in ranking order",
	Args:  cobra.ExactArgs(1),
	RunE:  runResults,
}

var auditCmd = &cobra.Command{
	Use:   "audit <document-id>",
	Short: "List audit events recorded for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudit,
}

var resultsLimit int

func init() {
	resultsCmd.Flags().IntVar(&resultsLimit, "limit", 0, "Maximum results to list (default 100)")

	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(auditCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runResults(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	database, err := app.requireDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	results, err := database.ListResultsForRequirement(ctx, args[0], resultsLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if app.jsonOutput() {
		return writeJSON(out, results)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tDOCUMENT\tSCORE\tSTATUS\tEVALUATED")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", i+1, r.DocumentID, r.OverallScore, r.Status, r.EvaluatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	database, err := app.requireDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	events, err := database.ListAuditEvents(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if app.jsonOutput() {
		return writeJSON(out, events)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tEVENT\tSEVERITY\tREQUIREMENT\tDETAIL")
	for _, e := range events {
		detail := fmt.Sprintf("score %d", e.Record.Score)
		if !e.Success {
			detail = e.ErrorCode
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Record.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Severity, e.Record.RequirementID, detail)
	}
	return tw.Flush()
}
