// Package types defines the shared domain types exchanged between the
// intake, extraction, valuation and session packages.
package types

// DocumentOrigin identifies how a source document entered the system.
type DocumentOrigin string

// Origin constants for source documents
const (
	OriginUploadedFile DocumentOrigin = "uploaded_file"
	OriginRemoteURL    DocumentOrigin = "remote_url"
)

// SourceDocument is the ingested artifact. RawText is immutable once produced;
// a new ingestion supersedes the document rather than mutating it.
type SourceDocument struct {
	Origin  DocumentOrigin `json:"origin"`
	URL     string         `json:"url,omitempty"`
	RawText string         `json:"raw_text"`
}

// Profile is the structured financial/strategic profile extracted from a deck.
// Numeric fields default to zero and text fields to empty string when the
// extraction service omits them.
type Profile struct {
	CompanyName   string  `json:"company_name"`
	AnnualRevenue float64 `json:"annual_revenue"`
	GrowthRate    float64 `json:"growth_rate"`
	Summary       string  `json:"summary,omitempty"`
	Strength      string  `json:"strength,omitempty"`
	Weakness      string  `json:"weakness,omitempty"`
	Opportunity   string  `json:"opportunity,omitempty"`
	Threat        string  `json:"threat,omitempty"`
}

// TurnRole identifies the author of a conversation turn.
type TurnRole string

// Turn role constants
const (
	RoleUser  TurnRole = "user"
	RoleAgent TurnRole = "agent"
)

// ConversationTurn is one ordered entry in a grounded Q&A session.
type ConversationTurn struct {
	Role    TurnRole `json:"role"`
	Content string   `json:"content"`
}
