package domain

import "time"

// ============================================================
// AI financial report
// ============================================================

// ReportResponse is the body for POST /report. The report text is returned
// verbatim from the text-generation service, never stored.
type ReportResponse struct {
	Report      string    `json:"report"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// GeneratedText is what the text-generation client hands back to the
// service layer: the concatenated candidate text plus token accounting.
type GeneratedText struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}
