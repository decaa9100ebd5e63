package sendpfhrsummary

import "pfhr-workers/internal/pfhr"

type Input struct {
	UserID       string      `json:"userId"`
	AssessmentID string      `json:"assessmentId,omitempty"`
	PFHR         pfhr.Result `json:"pfhr"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "failed", "disabled"
	Channels       []string `json:"channels,omitempty"`
	SentAt         string   `json:"sentAt"` // RFC 3339, UTC
}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
