package audit

import (
	"time"

	id "passport/pkg/domain"
)

// Event is emitted from service logic to capture passport lifecycle actions.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time
	PassportID id.PassportID
	Action     string
	// Reason explains rejected operations; empty on success.
	Reason string
	// RequestID is the correlation ID from the caller's context.
	RequestID string
}

type AuditEvent string

const (
	EventPassportIssued        AuditEvent = "passport_issued"
	EventPassportIssueRejected AuditEvent = "passport_issue_rejected"
	EventPassportRevoked       AuditEvent = "passport_revoked"
	EventStampAdded            AuditEvent = "passport_stamp_added"
)
