// Package main provides the entry point for the resume screener CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Resume parsing and requirement matching",
	Long: "Screener ingests PDF, DOCX, HTML and plain-text resumes, extracts a structured candidate profile " +
		"and scores it against declarative job requirements.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Interrupts cancel in-flight batch screening
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
