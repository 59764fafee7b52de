// Package intake normalizes an uploaded deck file or a remote URL into a
// SourceDocument with a best-effort plain-text rendering.
package intake

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/fetch"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/pdftext"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/types"
)

var (
	// ErrInvalidInput is returned when neither or both of file and URL are given.
	ErrInvalidInput = fmt.Errorf("exactly one of file or url is required")
	// ErrUnsupportedFormat is returned when an uploaded file is not a PDF.
	ErrUnsupportedFormat = fmt.Errorf("unsupported file format, expected PDF")
)

var pdfMagic = []byte("%PDF")

// Options configures the intake normalizer.
type Options struct {
	// UseBrowser enables headless-browser fallback for JavaScript-heavy pages.
	UseBrowser bool
	Verbose    bool
}

// Normalizer turns caller input into a SourceDocument. It is read-only: the
// document is never persisted here.
type Normalizer struct {
	pdf  *pdftext.Extractor
	opts Options
}

// NewNormalizer creates a normalizer using the given PDF extractor.
func NewNormalizer(pdf *pdftext.Extractor, opts Options) *Normalizer {
	return &Normalizer{pdf: pdf, opts: opts}
}

// Ingest accepts exactly one of fileBytes or urlStr and produces a
// SourceDocument. An empty text rendering is not an error; downstream
// extraction decides whether the content is sufficient.
func (n *Normalizer) Ingest(ctx context.Context, fileBytes []byte, urlStr string) (*types.SourceDocument, error) {
	hasFile := len(fileBytes) > 0
	hasURL := urlStr != ""
	if hasFile == hasURL {
		return nil, ErrInvalidInput
	}

	if hasFile {
		return n.ingestFile(ctx, fileBytes)
	}
	return n.ingestURL(ctx, urlStr)
}

func (n *Normalizer) ingestFile(ctx context.Context, fileBytes []byte) (*types.SourceDocument, error) {
	if !bytes.HasPrefix(fileBytes, pdfMagic) {
		return nil, ErrUnsupportedFormat
	}

	text, err := n.pdf.Extract(ctx, fileBytes)
	if err != nil {
		return nil, err
	}
	if n.opts.Verbose {
		log.Printf("[INTAKE] Uploaded PDF: %d bytes, %d chars of text", len(fileBytes), len(text))
	}

	return &types.SourceDocument{
		Origin:  types.OriginUploadedFile,
		RawText: text,
	}, nil
}

func (n *Normalizer) ingestURL(ctx context.Context, urlStr string) (*types.SourceDocument, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return nil, err
	}
	if n.opts.Verbose {
		log.Printf("[INTAKE] Fetched %s: %d bytes, content type %q", urlStr, len(result.Body), result.ContentType)
	}

	var text string
	if result.IsPDF() {
		text, err = n.pdf.Extract(ctx, result.Body)
		if err != nil {
			return nil, err
		}
	} else {
		text, err = fetch.ExtractMainText(string(result.Body), fetch.DeckPageSelectors())
		if err != nil {
			return nil, err
		}

		if n.opts.UseBrowser && fetch.ShouldUseBrowser(text) {
			// Likely an SPA; re-render with a headless browser and retry.
			browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, n.opts.Verbose)
			if browserErr != nil {
				if n.opts.Verbose {
					log.Printf("[INTAKE] Browser rendering failed: %v, using HTTP content", browserErr)
				}
			} else if rendered, renderErr := fetch.ExtractMainText(browserHTML, fetch.DeckPageSelectors()); renderErr == nil {
				text = rendered
			}
		}
	}

	return &types.SourceDocument{
		Origin:  types.OriginRemoteURL,
		URL:     urlStr,
		RawText: text,
	}, nil
}
