package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/config"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for deck analysis, grounded chat, and saved valuations.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values, which override environment variables.`,
	RunE: runServe,
}

var (
	serveConfigPath string
	servePort       int
	serveDBURL      string
	serveAPIKey     string
	servePdftotext  string
	serveUseBrowser bool
	serveVerbose    bool
	serveRateLimit  int
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().StringVar(&servePdftotext, "pdftotext", "", "Path to the pdftotext binary (optional, defaults to PATH lookup)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for script-heavy deck pages (requires Chrome)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	serveCmd.Flags().IntVar(&serveRateLimit, "rate-limit", 0, "Per-IP deck analyses per minute (default 20)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loadedCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if serveVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", serveConfigPath)
		}
	}

	// CLI overrides win; only apply flags that were explicitly set.
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDBURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}
	if cmd.Flags().Changed("pdftotext") {
		cfg.Pdftotext = servePdftotext
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = serveUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}
	if cmd.Flags().Changed("rate-limit") {
		cfg.RateLimitPerMinute = serveRateLimit
	}

	if err := cfg.FromEnv(); err != nil {
		return err
	}
	cfg = cfg.MergeWithDefaults(config.Config{Port: 8080})
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	srv, err := server.New(server.Config{
		Port:               cfg.Port,
		DatabaseURL:        cfg.DatabaseURL,
		APIKey:             cfg.APIKey,
		Pdftotext:          cfg.Pdftotext,
		UseBrowser:         cfg.UseBrowser,
		Verbose:            cfg.Verbose,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
