package domain

import "time"

// Audit event kinds emitted by the workflows.
const (
	AuditUserRegistered      = "user.registered"
	AuditLoginFailed         = "auth.login_failed"
	AuditLoginLocked         = "auth.login_locked"
	AuditMembershipRequested = "membership.requested"
	AuditMembershipDecided   = "membership.decided"
)

// AuditEvent is an operational trace record. Events are journaled locally
// first and flushed to the primary store in the background, so emitting one
// never blocks or fails a request.
type AuditEvent struct {
	ID         string            `json:"id"`
	UserID     int64             `json:"user_id,omitempty"`
	Kind       string            `json:"kind"`
	Detail     map[string]string `json:"detail,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
