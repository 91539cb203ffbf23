package main

import (
	"fmt"
	"io"

	"github.com/jonathan/resume-screener/internal/ingestion"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Decode a resume into normalized, section-tagged text",
	Long:  "Decode a PDF, DOCX, HTML or plain-text resume, clean its lines and label each line with the section it belongs to.",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	text, err := ingestion.NewIngestor(app.vocab).Ingest(doc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if app.jsonOutput() {
		return writeJSON(out, text)
	}
	return writeNormalizedText(out, text)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func writeNormalizedText(w io.Writer, text *types.NormalizedText) error {
	fmt.Fprintf(w, "# %s (%s)\n", text.SourceID, text.Format)
	for _, line := range text.Lines {
		if line.IsBlank() {
			fmt.Fprintln(w)
			continue
		}
		marker := " "
		if line.Heading {
			marker = "#"
		}
		fmt.Fprintf(w, "%4d %-14s %s %s\n", line.Number, line.Section, marker, line.Text)
	}
	return nil
}
