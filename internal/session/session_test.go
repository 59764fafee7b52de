package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/types"
)

type fakeAnswerer struct {
	answer string
	err    error
}

func (f *fakeAnswerer) Answer(_ context.Context, _, _ string) (string, error) {
	return f.answer, f.err
}

func ingestedSession(t *testing.T) *Session {
	t.Helper()
	s := &Session{}
	gen := s.BeginIngest()
	ok := s.ApplyExtraction(gen,
		&types.SourceDocument{Origin: types.OriginUploadedFile, RawText: "Acme deck text"},
		types.Profile{CompanyName: "Acme", GrowthRate: 0.4})
	require.True(t, ok)
	return s
}

func TestApplyExtraction_SeedsGrowthAndClearsHistory(t *testing.T) {
	s := ingestedSession(t)
	assert.Equal(t, 40.0, s.Growth())

	_, err := s.Ask(context.Background(), &fakeAnswerer{answer: "yes"}, "q1")
	require.NoError(t, err)
	assert.Len(t, s.History(), 2)

	gen := s.BeginIngest()
	require.True(t, s.ApplyExtraction(gen,
		&types.SourceDocument{Origin: types.OriginRemoteURL, URL: "https://example.com", RawText: "other deck"},
		types.Profile{CompanyName: "Other"}))

	assert.Empty(t, s.History())
	assert.Equal(t, 10.0, s.Growth(), "profile without growth seeds the default")

	profile, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, "Other", profile.CompanyName)
}

func TestApplyExtraction_StaleGenerationDiscarded(t *testing.T) {
	s := &Session{}
	oldGen := s.BeginIngest()
	newGen := s.BeginIngest()

	require.True(t, s.ApplyExtraction(newGen,
		&types.SourceDocument{RawText: "new deck"}, types.Profile{CompanyName: "New"}))

	assert.False(t, s.ApplyExtraction(oldGen,
		&types.SourceDocument{RawText: "old deck"}, types.Profile{CompanyName: "Old"}))

	profile, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, "New", profile.CompanyName)
}

func TestFailedIngestLeavesStateIntact(t *testing.T) {
	s := ingestedSession(t)

	// Extraction failed downstream, so ApplyExtraction is never called for
	// this generation.
	s.BeginIngest()

	profile, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, "Acme", profile.CompanyName)
}

func TestBeginIngest_ClearsHistoryEvenIfIngestFails(t *testing.T) {
	s := ingestedSession(t)
	_, err := s.Ask(context.Background(), &fakeAnswerer{answer: "yes"}, "q1")
	require.NoError(t, err)
	require.Len(t, s.History(), 2)

	// The attempt fails downstream; ApplyExtraction never runs. History is
	// gone regardless, while the previous deck stays answerable.
	s.BeginIngest()

	assert.Empty(t, s.History())
	profile, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, "Acme", profile.CompanyName)
}

func TestApplyExtraction_DiscardedAfterClear(t *testing.T) {
	s := ingestedSession(t)
	gen := s.BeginIngest()
	s.Clear()

	assert.False(t, s.ApplyExtraction(gen,
		&types.SourceDocument{RawText: "late deck"}, types.Profile{CompanyName: "Late"}))

	_, ok := s.Profile()
	assert.False(t, ok)
}

func TestAsk(t *testing.T) {
	s := ingestedSession(t)

	answer, err := s.Ask(context.Background(), &fakeAnswerer{answer: "grounded answer"}, "What does Acme do?")
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", answer)

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, types.RoleUser, history[0].Role)
	assert.Equal(t, "What does Acme do?", history[0].Content)
	assert.Equal(t, types.RoleAgent, history[1].Role)
	assert.Equal(t, "grounded answer", history[1].Content)
}

func TestAsk_NoContext(t *testing.T) {
	s := &Session{}
	_, err := s.Ask(context.Background(), &fakeAnswerer{answer: "x"}, "anything?")
	assert.ErrorIs(t, err, ErrNoContext)
	assert.Empty(t, s.History())
}

func TestAsk_FailureKeepsUserTurn(t *testing.T) {
	s := ingestedSession(t)

	_, err := s.Ask(context.Background(), &fakeAnswerer{err: errors.New("model down")}, "q1")
	require.Error(t, err)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, types.RoleUser, history[0].Role)

	// A later successful turn continues the same history.
	_, err = s.Ask(context.Background(), &fakeAnswerer{answer: "recovered"}, "q2")
	require.NoError(t, err)
	assert.Len(t, s.History(), 3)
}

type funcAnswerer struct {
	fn func(ctx context.Context, deckText, question string) (string, error)
}

func (f *funcAnswerer) Answer(ctx context.Context, deckText, question string) (string, error) {
	return f.fn(ctx, deckText, question)
}

func TestAsk_SupersededAnswerNotRecorded(t *testing.T) {
	s := ingestedSession(t)

	// A new deck lands while the answer is in flight. The answer, grounded
	// in the old deck, must not end up in the new deck's history.
	a := &funcAnswerer{fn: func(context.Context, string, string) (string, error) {
		gen := s.BeginIngest()
		require.True(t, s.ApplyExtraction(gen,
			&types.SourceDocument{RawText: "deck B"}, types.Profile{CompanyName: "B"}))
		return "answer about deck A", nil
	}}

	answer, err := s.Ask(context.Background(), a, "q about A")
	require.NoError(t, err)
	assert.Equal(t, "answer about deck A", answer)
	assert.Empty(t, s.History())
}

func TestAsk_AnswerAfterClearNotRecorded(t *testing.T) {
	s := ingestedSession(t)

	a := &funcAnswerer{fn: func(context.Context, string, string) (string, error) {
		s.Clear()
		return "late answer", nil
	}}

	_, err := s.Ask(context.Background(), a, "q")
	require.NoError(t, err)
	assert.Empty(t, s.History())
	_, ok := s.Profile()
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	s := ingestedSession(t)
	s.SetGrowth(120)
	s.Clear()

	_, ok := s.Profile()
	assert.False(t, ok)
	assert.Zero(t, s.Growth())
	assert.Empty(t, s.History())

	_, err := s.Ask(context.Background(), &fakeAnswerer{answer: "x"}, "q")
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestManager_ScopesByOwner(t *testing.T) {
	m := NewManager()
	alice := uuid.New()
	bob := uuid.New()

	assert.Same(t, m.Get(alice), m.Get(alice))
	assert.NotSame(t, m.Get(alice), m.Get(bob))
}

func TestSetGrowth_Clamps(t *testing.T) {
	s := &Session{}
	s.SetGrowth(500)
	assert.Equal(t, 200.0, s.Growth())
	s.SetGrowth(-10)
	assert.Equal(t, 0.0, s.Growth())
}
