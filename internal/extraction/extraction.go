// Package extraction invokes the LLM extraction service and coerces its
// response into a structured deck profile.
package extraction

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/llm"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/prompts"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/schemas"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/types"
)

const (
	// MinTextLength is the minimum amount of extracted document text worth
	// sending to the extraction service.
	MinTextLength = 50
	// MaxInputLength caps the document text included in the extraction prompt.
	MaxInputLength = 4000
	// MaxReasonableRevenue guards against hallucinated revenue figures.
	MaxReasonableRevenue = 100_000_000_000
	// DefaultCompanyName is used when extraction reports no company name.
	DefaultCompanyName = "Unknown"
)

// Result carries the coerced profile together with the unchanged raw text,
// which seeds the conversation session.
type Result struct {
	Profile types.Profile
	RawText string
}

// Adapter performs a single extraction round trip per call. Retrying is the
// caller's decision.
type Adapter struct {
	client llm.Client
}

// NewAdapter creates an extraction adapter over an LLM client.
func NewAdapter(client llm.Client) *Adapter {
	return &Adapter{client: client}
}

// Extract sends the document text to the extraction service and coerces the
// response. A *ServiceError is returned when the service fails or the content
// is too thin to analyze; coercion itself never fails.
func (a *Adapter) Extract(ctx context.Context, rawText string) (*Result, error) {
	if len(strings.TrimSpace(rawText)) < MinTextLength {
		return nil, &ServiceError{Message: "Content is empty or unreadable."}
	}

	template := prompts.MustGet("extraction.json", "extract-deck-profile")
	prompt := prompts.Format(template, map[string]string{
		"DeckText": clip(rawText, MaxInputLength),
	})

	jsonResp, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &ServiceError{Message: err.Error(), Cause: err}
	}

	payload := []byte(jsonResp)
	if schemaErr := schemas.ValidateProfilePayload(payload); schemaErr != nil {
		// Advisory only: coercion below degrades gracefully.
		log.Printf("[EXTRACT] response does not conform to profile schema: %v", schemaErr)
	}

	return &Result{
		Profile: CoerceProfile(payload),
		RawText: rawText,
	}, nil
}

// CoerceProfile turns an extraction response body into a Profile. It is total:
// missing numbers become 0, missing text becomes empty, and a malformed body
// degrades into a default profile instead of failing.
func CoerceProfile(payload []byte) types.Profile {
	var raw map[string]any
	_ = json.Unmarshal(payload, &raw)

	profile := types.Profile{
		CompanyName:   asString(raw["company_name"]),
		AnnualRevenue: asFloat(raw["annual_revenue"]),
		GrowthRate:    asFloat(raw["growth_rate"]),
		Summary:       asString(raw["summary"]),
		Strength:      asString(raw["strength"]),
		Weakness:      asString(raw["weakness"]),
		Opportunity:   asString(raw["opportunity"]),
		Threat:        asString(raw["threat"]),
	}

	if strings.TrimSpace(profile.CompanyName) == "" {
		profile.CompanyName = DefaultCompanyName
	}
	if profile.AnnualRevenue < 0 || profile.AnnualRevenue > MaxReasonableRevenue {
		profile.AnnualRevenue = 0
	}
	if profile.GrowthRate < 0 {
		profile.GrowthRate = 0
	}
	if profile.GrowthRate > 10 {
		// The model reported percent instead of a fraction.
		profile.GrowthRate = profile.GrowthRate / 100
	}

	return profile
}

// asString coerces a JSON value into a string, tolerating absence.
func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// asFloat coerces a JSON value into a float64, tolerating absence and
// numbers delivered as strings.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(n, "$"), ",", ""))
		if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
			return f
		}
	}
	return 0
}

// clip bounds text to at most max bytes without splitting a UTF-8 rune at
// the cut point.
func clip(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}
