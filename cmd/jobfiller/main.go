// Package main provides the entry point for the jobfiller CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobfiller",
	Short: "Fill job application forms from a stored resume",
	Long: `jobfiller structures resumes, stores them, and fills the fields of job
application forms with their values using per-domain field mappings and an
optional AI collaborator.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
