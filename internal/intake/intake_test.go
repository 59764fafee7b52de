package intake

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/fetch"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/pdftext"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner stands in for the pdftotext binary.
type fakeRunner struct {
	stdout []byte
	err    error
}

func (f *fakeRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	return f.stdout, nil, f.err
}

func newTestNormalizer(pdfText string) *Normalizer {
	extractor := pdftext.NewExtractorWithRunner(pdftext.Config{}, &fakeRunner{stdout: []byte(pdfText)})
	return NewNormalizer(extractor, Options{})
}

func TestIngest_RejectsBothAndNeither(t *testing.T) {
	n := newTestNormalizer("")

	tests := []struct {
		name      string
		fileBytes []byte
		url       string
	}{
		{"neither", nil, ""},
		{"both", []byte("%PDF"), "https://example.com/deck.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Ingest(context.Background(), tt.fileBytes, tt.url)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestIngest_RejectsNonPDFUpload(t *testing.T) {
	n := newTestNormalizer("")

	_, err := n.Ingest(context.Background(), []byte("<html>not a pdf</html>"), "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestIngest_UploadedPDF(t *testing.T) {
	n := newTestNormalizer("Acme Robotics\nSeries A")

	doc, err := n.Ingest(context.Background(), []byte("%PDF-1.7 fake"), "")
	require.NoError(t, err)
	assert.Equal(t, types.OriginUploadedFile, doc.Origin)
	assert.Contains(t, doc.RawText, "Acme Robotics")
}

func TestIngest_UploadedPDF_EmptyTextIsNotAnError(t *testing.T) {
	n := newTestNormalizer("")

	doc, err := n.Ingest(context.Background(), []byte("%PDF scanned"), "")
	require.NoError(t, err)
	assert.Empty(t, doc.RawText)
}

func TestIngest_RemoteHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><main><h1>Acme Robotics</h1><p>We automate picking.</p></main></body></html>`))
	}))
	defer server.Close()

	n := newTestNormalizer("")
	doc, err := n.Ingest(context.Background(), nil, server.URL)
	require.NoError(t, err)
	assert.Equal(t, types.OriginRemoteURL, doc.Origin)
	assert.Equal(t, server.URL, doc.URL)
	assert.Contains(t, doc.RawText, "Acme Robotics")
}

func TestIngest_RemotePDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 fake deck"))
	}))
	defer server.Close()

	n := newTestNormalizer("Deck text from pdftotext")
	doc, err := n.Ingest(context.Background(), nil, server.URL)
	require.NoError(t, err)
	assert.Contains(t, doc.RawText, "Deck text from pdftotext")
}

func TestIngest_RemoteFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n := newTestNormalizer("")
	_, err := n.Ingest(context.Background(), nil, server.URL)
	require.Error(t, err)

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
}
