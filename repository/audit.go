package repository

import (
	"context"

	"github.com/vecindapp/auth-service/domain"
)

// AuditRepository persists flushed audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}
