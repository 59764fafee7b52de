// Package session holds per-user analysis state between requests: the
// ingested deck, the extracted profile, the growth assumption, and the
// conversation history. State is in-memory and scoped to a single process.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/types"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/valuation"
)

// ErrNoContext is returned when an operation needs an ingested deck and the
// session has none.
var ErrNoContext = errors.New("no deck has been analyzed in this session")

// Answerer produces a grounded answer to a question about deckText.
type Answerer interface {
	Answer(ctx context.Context, deckText, question string) (string, error)
}

// Session is the mutable analysis state for one user. All exported methods
// are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	doc     *types.SourceDocument
	profile types.Profile
	growth  float64
	turns   []types.ConversationTurn

	// generation identifies the latest ingestion attempt. Results from an
	// older attempt are discarded so a slow extraction cannot overwrite a
	// newer one.
	generation uint64

	// chatMu serializes question answering so turns land in history in the
	// order they were asked.
	chatMu sync.Mutex
}

// BeginIngest marks the start of a new ingestion attempt and returns its
// generation token. Conversation history is dropped immediately, whether or
// not the attempt succeeds; the previous deck and profile stay in place
// until ApplyExtraction succeeds with the same token.
func (s *Session) BeginIngest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.turns = nil
	return s.generation
}

// ApplyExtraction installs a freshly extracted deck into the session,
// replacing the previous deck and clearing conversation history. It reports
// false when gen is stale, in which case nothing changes.
func (s *Session) ApplyExtraction(gen uint64, doc *types.SourceDocument, profile types.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.doc = doc
	s.profile = profile
	s.growth = valuation.SeedGrowth(profile)
	s.turns = nil
	return true
}

// Profile returns the extracted profile and whether a deck has been ingested.
func (s *Session) Profile() (types.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, s.doc != nil
}

// Growth returns the current growth assumption in percent.
func (s *Session) Growth() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.growth
}

// SetGrowth updates the growth assumption, clamped to the slider range.
func (s *Session) SetGrowth(growthPercent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.growth = valuation.ClampGrowth(growthPercent)
}

// History returns a copy of the conversation so far.
func (s *Session) History() []types.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Ask records the question, obtains a grounded answer, and records it.
// Questions are answered one at a time per session. When the answerer fails,
// the user's turn stays in history with no agent turn, and the error is
// returned to the caller.
func (s *Session) Ask(ctx context.Context, answerer Answerer, question string) (string, error) {
	s.chatMu.Lock()
	defer s.chatMu.Unlock()

	s.mu.Lock()
	if s.doc == nil {
		s.mu.Unlock()
		return "", ErrNoContext
	}
	deckText := s.doc.RawText
	gen := s.generation
	s.turns = append(s.turns, types.ConversationTurn{Role: types.RoleUser, Content: question})
	s.mu.Unlock()

	answer, err := answerer.Answer(ctx, deckText, question)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	// The deck may have been replaced or the session cleared while the
	// answer was in flight. The stale answer is still returned to the
	// caller but never recorded against the new state.
	if gen == s.generation {
		s.turns = append(s.turns, types.ConversationTurn{Role: types.RoleAgent, Content: answer})
	}
	s.mu.Unlock()
	return answer, nil
}

// Clear drops all analysis state and invalidates every outstanding
// generation token, so an extraction or chat answer still in flight when
// the session was torn down is discarded.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.doc = nil
	s.profile = types.Profile{}
	s.growth = 0
	s.turns = nil
}

// Manager hands out sessions keyed by owner.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session)}
}

// Get returns the owner's session, creating it on first use.
func (m *Manager) Get(owner uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[owner]
	if !ok {
		s = &Session{}
		m.sessions[owner] = s
	}
	return s
}
