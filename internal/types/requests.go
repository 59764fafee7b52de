package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ChatRequest represents a grounded question for the chat endpoint.
type ChatRequest struct {
	Question string `json:"question" validate:"required,min=1"`
}

// ChatResponse carries the agent's answer.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// AnalyzeResponse is the success payload of a deck analysis. GrowthPercent
// is the growth assumption seeded from the extracted profile, which the
// client uses as the slider's starting position.
type AnalyzeResponse struct {
	Status        string   `json:"status"`
	Data          *Profile `json:"data,omitempty"`
	RawText       string   `json:"raw_text,omitempty"`
	GrowthPercent float64  `json:"growth_percent,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// SaveValuationRequest represents the request to persist the current analysis.
type SaveValuationRequest struct {
	GrowthPercent float64 `json:"growth_percent" validate:"gte=0,lte=200"`
}

// ValuationRecordView is the API shape of a persisted valuation record.
type ValuationRecordView struct {
	ID              uuid.UUID `json:"id"`
	CompanyName     string    `json:"company_name"`
	ValuationAmount float64   `json:"valuation_amount"`
	SWOTAnalysis    string    `json:"swot_analysis"`
	CreatedAt       time.Time `json:"created_at"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SaveValuationRequest using the validator.
func (r *SaveValuationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
