package models

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is a persisted classification result.
type Analysis struct {
	ID          uuid.UUID `json:"id"`
	Ingredients []string  `json:"ingredients"`
	Status      string    `json:"status"`
	RiskScore   int       `json:"riskScore"`
	MatchCount  int       `json:"matchCount"`
	Rule        string    `json:"rule,omitempty"` // rule that chose the summary; empty when safe
	Source      string    `json:"source"`         // "local" or "remote"
	CreatedAt   time.Time `json:"createdAt"`
}

// IsDanger returns true if the analysis found a conflict.
func (a *Analysis) IsDanger() bool {
	return a.Status == "danger"
}
