package computepfhrscore

import (
	"encoding/json"

	"pfhr-workers/internal/pfhr"
)

type Input struct {
	UserID string          `json:"userId"`
	Inputs json.RawMessage `json:"inputs"`
}

type Output struct {
	UserID     string      `json:"userId"`
	PFHR       pfhr.Result `json:"pfhr"`
	ComputedAt string      `json:"computedAt"` // RFC 3339, UTC
}
