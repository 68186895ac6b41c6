package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/vecindapp/auth-service/domain"
)

// Entry wraps an audit event while it sits in the local journal waiting to be
// flushed to the primary store.
type Entry struct {
	Event   domain.AuditEvent `json:"event"`
	Retries int               `json:"retries"`

	storeKey []byte
}

func (e *Entry) normalize() {
	if e.Event.ID == "" {
		e.Event.ID = uuid.NewString()
	}
	if e.Event.OccurredAt.IsZero() {
		e.Event.OccurredAt = time.Now()
	}
}
