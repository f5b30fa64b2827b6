package prediction

import (
	"fmt"
	"time"
)

const (
	MaxGoals      = 10
	MaxConfidence = 100.0
)

// Prediction is one user's forecast for one match. A user keeps at most one
// row per match; later submissions overwrite earlier ones.
type Prediction struct {
	ID         string
	UserID     string
	MatchID    string
	HomeGoals  int
	AwayGoals  int
	Analysis   string
	Confidence float64
	Correct    *bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Prediction) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("prediction id is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("prediction user id is required")
	}
	if p.MatchID == "" {
		return fmt.Errorf("prediction match id is required")
	}
	if p.HomeGoals < 0 || p.HomeGoals > MaxGoals || p.AwayGoals < 0 || p.AwayGoals > MaxGoals {
		return fmt.Errorf("prediction goals must be between 0 and %d", MaxGoals)
	}
	if p.Confidence < 0 || p.Confidence > MaxConfidence {
		return fmt.Errorf("prediction confidence must be between 0 and %.0f", MaxConfidence)
	}

	return nil
}

// IsVerified reports whether the prediction has been checked against a
// final result.
func (p Prediction) IsVerified() bool {
	return p.Correct != nil
}

// ClampGoals forces a forecast goal count into the accepted range.
func ClampGoals(goals int) int {
	if goals < 0 {
		return 0
	}
	if goals > MaxGoals {
		return MaxGoals
	}
	return goals
}

// ClampConfidence forces a confidence value into the accepted range.
func ClampConfidence(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > MaxConfidence {
		return MaxConfidence
	}
	return confidence
}
