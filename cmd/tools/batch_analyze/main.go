// Command batch_analyze runs deck analysis over a directory of PDF files and
// prints a valuation estimate per deck.
//
// Usage:
//
//	go run cmd/tools/batch_analyze/main.go -dir ./decks -concurrency 4
//
// Requires GEMINI_API_KEY environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/extraction"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/intake"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/llm"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/observability"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/pdftext"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/types"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/valuation"
)

type deckResult struct {
	file    string
	company string
	profile *types.Profile
	growth  float64
	amount  float64
	err     error
}

func main() {
	dir := flag.String("dir", "", "Directory containing PDF decks")
	concurrency := flag.Int("concurrency", 4, "Number of decks analyzed in parallel")
	pdftotextPath := flag.String("pdftotext", "", "Path to the pdftotext binary")
	verbose := flag.Bool("v", false, "Print detailed debug information")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "ERROR: -dir is required")
		os.Exit(1)
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "ERROR: GEMINI_API_KEY environment variable not set")
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.pdf"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to list decks: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No PDF files found in %s\n", *dir)
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create model client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	normalizer := intake.NewNormalizer(
		pdftext.NewExtractor(pdftext.Config{Pdftotext: *pdftotextPath}),
		intake.Options{Verbose: *verbose},
	)
	extractor := extraction.NewAdapter(client)

	var mu sync.Mutex
	results := make([]deckResult, 0, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)
	for _, file := range files {
		g.Go(func() error {
			res := analyzeDeck(gctx, normalizer, extractor, file)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			// Individual deck failures are reported, not fatal.
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].file < results[j].file })

	printer := observability.NewPrinter(os.Stdout)
	failures := 0
	for _, res := range results {
		if res.err != nil {
			failures++
			fmt.Printf("%-40s ERROR: %v\n", filepath.Base(res.file), res.err)
			continue
		}
		if *verbose {
			printer.PrintProfile(res.profile)
			printer.PrintValuation(res.company, res.growth, res.amount)
			continue
		}
		fmt.Printf("%-40s %-25s growth %5.1f%%  $%.0f\n",
			filepath.Base(res.file), res.company, res.growth, res.amount)
	}

	fmt.Println()
	fmt.Printf("Analyzed %d decks, %d failed\n", len(results), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func analyzeDeck(ctx context.Context, normalizer *intake.Normalizer, extractor *extraction.Adapter, file string) deckResult {
	res := deckResult{file: file}

	data, err := os.ReadFile(file)
	if err != nil {
		res.err = fmt.Errorf("read: %w", err)
		return res
	}

	doc, err := normalizer.Ingest(ctx, data, "")
	if err != nil {
		res.err = fmt.Errorf("ingest: %w", err)
		return res
	}

	result, err := extractor.Extract(ctx, doc.RawText)
	if err != nil {
		res.err = fmt.Errorf("extract: %w", err)
		return res
	}

	growth := valuation.SeedGrowth(result.Profile)
	res.company = strings.TrimSpace(result.Profile.CompanyName)
	res.profile = &result.Profile
	res.growth = growth
	res.amount = valuation.Estimate(result.Profile, growth)
	return res
}
