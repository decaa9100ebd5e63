package models

// Audit actions written to audit_log.
const (
	AuditActionAssessmentCreated = "pfhr_assessment_created"
	AuditActionSummarySent       = "pfhr_summary_sent"
)

// AuditEntityAssessment is the entity_type of assessment audit rows.
const AuditEntityAssessment = "pfhr_assessment"

// AuditEntry is one audit_log row.
type AuditEntry struct {
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityId"`
	Action     string                 `json:"action"`
	ActorID    string                 `json:"actorId"`
	Details    map[string]interface{} `json:"details,omitempty"`
}
