// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSummaryLen caps the summary excerpt shown in the box
	maxSummaryLen = 200
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of an extracted company profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", profile.CompanyName))
	sb.WriteString(fmt.Sprintf("Revenue:  $%.0f\n", profile.AnnualRevenue))
	sb.WriteString(fmt.Sprintf("Growth:   %.1f%%\n", profile.GrowthRate*100))

	if summary := strings.TrimSpace(profile.Summary); summary != "" {
		if len(summary) > maxSummaryLen {
			summary = summary[:maxSummaryLen-3] + "..."
		}
		sb.WriteString("\n")
		sb.WriteString(summary)
		sb.WriteString("\n")
	}

	if swot := formatSWOTLines(profile); swot != "" {
		sb.WriteString("\n")
		sb.WriteString(swot)
	}

	p.printBox("EXTRACTED PROFILE", sb.String())
}

// PrintValuation outputs the computed estimate for a profile at the given
// growth assumption.
func (p *Printer) PrintValuation(company string, growthPercent, amount float64) {
	content := fmt.Sprintf("Company:    %s\nGrowth:     %.1f%%\nEstimate:   $%.0f", company, growthPercent, amount)
	p.printBox("VALUATION", content)
}

func formatSWOTLines(profile *types.Profile) string {
	var sb strings.Builder
	appendLine := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			sb.WriteString(fmt.Sprintf("%-12s %s\n", label+":", value))
		}
	}
	appendLine("Strength", profile.Strength)
	appendLine("Weakness", profile.Weakness)
	appendLine("Opportunity", profile.Opportunity)
	appendLine("Threat", profile.Threat)
	return strings.TrimRight(sb.String(), "\n")
}
