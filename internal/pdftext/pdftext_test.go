package pdftext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records the invocation and returns canned output.
type fakeRunner struct {
	name   string
	args   []string
	stdout []byte
	stderr []byte
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	return f.stdout, f.stderr, f.err
}

func TestExtract_Success(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("Acme Robotics\fSeries A deck\n\n\n\nRevenue: $2M\n")}
	e := NewExtractorWithRunner(Config{}, runner)

	text, err := e.Extract(context.Background(), []byte("%PDF-1.7 fake"))
	require.NoError(t, err)

	assert.Equal(t, "pdftotext", runner.name)
	assert.Contains(t, runner.args, "-l")
	assert.Contains(t, runner.args, "10")
	assert.Contains(t, text, "Acme Robotics")
	assert.Contains(t, text, "Revenue: $2M")
	assert.NotContains(t, text, "\f")
	assert.NotContains(t, text, "\n\n\n")
}

func TestExtract_CustomPageLimit(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("text")}
	e := NewExtractorWithRunner(Config{MaxPages: 3}, runner)

	_, err := e.Extract(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Contains(t, runner.args, "3")
}

func TestExtract_CommandFailure(t *testing.T) {
	runner := &fakeRunner{stderr: []byte("Syntax Error: broken xref"), err: errors.New("exit status 1")}
	e := NewExtractorWithRunner(Config{}, runner)

	_, err := e.Extract(context.Background(), []byte("not a pdf"))
	require.Error(t, err)

	var pdfErr *Error
	require.ErrorAs(t, err, &pdfErr)
	assert.Contains(t, pdfErr.Stderr, "Syntax Error")
}

func TestExtract_EmptyOutputIsNotAnError(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("")}
	e := NewExtractorWithRunner(Config{}, runner)

	text, err := e.Extract(context.Background(), []byte("%PDF scanned images only"))
	require.NoError(t, err)
	assert.Empty(t, text)
}
