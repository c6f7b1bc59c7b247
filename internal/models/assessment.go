package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction outcome constants
const (
	OutcomeHighRisk    = "high_risk"
	OutcomeLowRisk     = "low_risk"
	OutcomeUnavailable = "model_unavailable"
	OutcomeError       = "error"
)

// Assessment is the rendered result of one "Analyze Risk" action.
type Assessment struct {
	ID          uuid.UUID
	HighRisk    bool
	Probability string // p(attrition) as a percentage, e.g. "72.50%"
	CreatedAt   time.Time
}

// Outcome returns the outcome label used for metrics.
func (a Assessment) Outcome() string {
	if a.HighRisk {
		return OutcomeHighRisk
	}
	return OutcomeLowRisk
}

// OutcomeCount is a running count of assessments per outcome.
type OutcomeCount struct {
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
