// Package models holds the records shared by the PFHR workers.
package models

import (
	"time"

	"pfhr-workers/internal/pfhr"
)

// Assessment is one stored PFHR computation. It is the row in pfhr_assessments and the
// value cached under the user's latest-assessment key.
type Assessment struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Inputs          pfhr.Inputs    `json:"inputs"`
	Score           float64        `json:"score"`
	RiskLevel       pfhr.RiskLevel `json:"riskLevel"`
	Breakdown       pfhr.Breakdown `json:"breakdown"`
	Recommendations []string       `json:"recommendations"`
	CreatedAt       time.Time      `json:"createdAt"`
}

func NewAssessment(id, userID string, in pfhr.Inputs, res pfhr.Result, createdAt time.Time) *Assessment {
	return &Assessment{
		ID:              id,
		UserID:          userID,
		Inputs:          in,
		Score:           res.Score,
		RiskLevel:       res.RiskLevel,
		Breakdown:       res.Breakdown,
		Recommendations: res.Recommendations,
		CreatedAt:       createdAt.UTC(),
	}
}

// Result rebuilds the scorer output the assessment was created from.
func (a *Assessment) Result() pfhr.Result {
	return pfhr.Result{
		Score:           a.Score,
		Breakdown:       a.Breakdown,
		RiskLevel:       a.RiskLevel,
		Recommendations: a.Recommendations,
	}
}
