package recordpfhrassessment

import "pfhr-workers/internal/pfhr"

type Input struct {
	UserID string      `json:"userId"`
	Inputs pfhr.Inputs `json:"inputs"`
	PFHR   pfhr.Result `json:"pfhr"`
}

type Output struct {
	AssessmentID string `json:"assessmentId"`
	UserID       string `json:"userId"`
	CreatedAt    string `json:"createdAt"` // RFC 3339, UTC
	Cached       bool   `json:"cached"`
}
