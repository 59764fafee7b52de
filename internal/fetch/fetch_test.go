package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, string(result.Body), "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{
			name:   "PDF extension in URL",
			result: Result{URL: "https://example.com/deck.pdf", Body: []byte("anything")},
			want:   true,
		},
		{
			name:   "PDF content type",
			result: Result{URL: "https://example.com/deck", ContentType: "application/pdf", Body: []byte("anything")},
			want:   true,
		},
		{
			name:   "PDF magic bytes",
			result: Result{URL: "https://example.com/deck", ContentType: "application/octet-stream", Body: []byte("%PDF-1.7 rest")},
			want:   true,
		},
		{
			name:   "HTML page",
			result: Result{URL: "https://example.com/about", ContentType: "text/html", Body: []byte("<html></html>")},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.IsPDF())
		})
	}
}

func TestExtractMainText_WithMainElement(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Acme Robotics</h1>
				<p>We automate warehouse picking.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, DeckPageSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Acme Robotics")
	assert.Contains(t, text, "warehouse picking")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	html := `
	<html>
		<body>
			<div>Some content here.</div>
		</body>
	</html>`

	text, err := ExtractMainText(html, DeckPageSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Some content here")
}

func TestExtractMainText_CapsLength(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body><main>")
	for i := 0; i < 2000; i++ {
		sb.WriteString("<p>line of deck content</p>")
	}
	sb.WriteString("</main></body></html>")

	text, err := ExtractMainText(sb.String(), DeckPageSelectors())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(text), MaxHTMLTextLength)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="banner">Subscribe now</div>
			<main><p>Deck text</p></main>
		</body>
	</html>`

	text, err := ExtractMainText(html, DeckPageSelectors(), ".banner")
	require.NoError(t, err)
	assert.Contains(t, text, "Deck text")
	assert.NotContains(t, text, "Subscribe now")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("short"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", MinContentLength+1)))
}
