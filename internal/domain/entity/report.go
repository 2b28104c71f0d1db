package entity

import "time"

// Verdict buckets a listed price against the estimated market value.
type Verdict string

const (
	VerdictUnderpriced Verdict = "UNDERPRICED"
	VerdictGoodDeal    Verdict = "GOOD DEAL"
	VerdictFair        Verdict = "FAIRLY PRICED"
	VerdictOverpriced  Verdict = "OVERPRICED"
	VerdictUnknown     Verdict = "UNKNOWN"
)

// Report is the outcome of analyzing one listing URL.
type Report struct {
	URL          string    `json:"url"`
	Verdict      Verdict   `json:"verdict"`
	Markdown     string    `json:"markdown"`
	FromFallback bool      `json:"from_fallback"`
	CreatedAt    time.Time `json:"created_at"`
}
