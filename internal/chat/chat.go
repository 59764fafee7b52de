// Package chat answers follow-up questions about an ingested deck. Answers
// are grounded exclusively in the deck text carried by the caller; the model
// is instructed to refuse questions the deck does not cover.
package chat

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/llm"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/prompts"
)

// MaxContextLength caps the deck text included in the prompt.
const MaxContextLength = 8000

// ServiceError represents a failure reported by (or while reaching) the
// answering service.
type ServiceError struct {
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("chat failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("chat failed: %s", e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Service generates grounded answers over a deck.
type Service struct {
	client llm.Client
}

func NewService(client llm.Client) *Service {
	return &Service{client: client}
}

// Answer responds to question using only deckText as grounding material.
// A *ServiceError is returned when the answering service fails; the caller
// decides how a failed turn affects conversation history.
func (s *Service) Answer(ctx context.Context, deckText, question string) (string, error) {
	template := prompts.MustGet("chat.json", "answer-deck-question")
	prompt := prompts.Format(template, map[string]string{
		"Context":  clip(deckText, MaxContextLength),
		"Question": question,
	})

	answer, err := s.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", &ServiceError{Message: err.Error(), Cause: err}
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", &ServiceError{Message: "the answering service returned an empty response"}
	}
	return answer, nil
}

// clip bounds s to at most max bytes without splitting a UTF-8 rune at the
// cut point.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
