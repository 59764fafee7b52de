// Package pdftext extracts plain text from PDF documents by shelling out to
// the poppler pdftotext utility.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// MaxPages is how many leading pages are read from a deck. Pitch decks front-load
// the relevant content, and it keeps extraction input bounded.
const MaxPages = 10

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.Bytes(), errb.Bytes(), err
}

// Error represents a failed PDF text extraction.
type Error struct {
	Message string
	Stderr  string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf text extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf text extraction failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config holds the extractor configuration.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 -> MaxPages default
}

// Extractor converts PDF bytes into plain text.
type Extractor struct {
	cfg    Config
	runner Runner
}

// NewExtractor creates an extractor with defaults applied.
func NewExtractor(cfg Config) *Extractor {
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = MaxPages
	}
	return &Extractor{cfg: cfg, runner: execRunner{}}
}

// NewExtractorWithRunner creates an extractor using a custom command runner.
func NewExtractorWithRunner(cfg Config, runner Runner) *Extractor {
	e := NewExtractor(cfg)
	e.runner = runner
	return e
}

// Extract writes the PDF to a temp file and runs pdftotext over its leading
// pages. An empty result is not an error; callers decide whether the text is
// sufficient.
func (e *Extractor) Extract(ctx context.Context, pdf []byte) (string, error) {
	tmp, err := os.CreateTemp("", "deck-*.pdf")
	if err != nil {
		return "", &Error{Message: "failed to create temp file", Cause: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(pdf); err != nil {
		_ = tmp.Close()
		return "", &Error{Message: "failed to write temp file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &Error{Message: "failed to close temp file", Cause: err}
	}

	// pdftotext -f 1 -l <n> -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext,
		"-f", "1", "-l", strconv.Itoa(e.cfg.MaxPages),
		"-enc", "UTF-8", "-eol", "unix",
		tmp.Name(), "-")
	if err != nil {
		return "", &Error{Message: "pdftotext failed", Stderr: string(errb), Cause: err}
	}

	return normalize(string(out)), nil
}

// normalize strips form feeds and collapses blank runs left by pdftotext.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\f", "\n")
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		cleaned = append(cleaned, line)
	}
	out := strings.Join(cleaned, "\n")
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(out)
}
