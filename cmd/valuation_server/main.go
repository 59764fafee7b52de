// Package main provides the entry point for the startup valuation HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "valuation_server",
	Short: "Startup Valuation HTTP API Server",
	Long:  "Startup Valuation analyzes pitch decks (uploaded PDFs or URLs), extracts a structured company profile, computes a growth-adjusted valuation estimate, and answers grounded questions via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
