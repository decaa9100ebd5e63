package getlatestpfhrassessment

import "pfhr-workers/internal/models"

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	Found      bool               `json:"found"`
	Assessment *models.Assessment `json:"assessment,omitempty"`
	Source     string             `json:"source,omitempty"` // "cache" or "database"
}

const (
	SourceCache    = "cache"
	SourceDatabase = "database"
)
