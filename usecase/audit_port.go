package usecase

import (
	"context"

	"github.com/vecindapp/auth-service/domain"
)

// AuditTrail abstracts the audit pipeline so workflows stay storage-agnostic.
// Recording is best-effort: implementations journal locally and must never
// fail or block the request that emitted the event.
type AuditTrail interface {
	Record(ctx context.Context, event domain.AuditEvent)
}

// NopAuditTrail discards events; used in tests and when auditing is disabled.
type NopAuditTrail struct{}

func (NopAuditTrail) Record(context.Context, domain.AuditEvent) {}
