package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/internal/infrastructure/journal"
	"github.com/vecindapp/auth-service/usecase"
)

// AuditBridge adapts the use case audit port to the flusher. Recording is
// best effort: a failure is logged, never surfaced to the request that
// produced the event.
type AuditBridge struct {
	flusher *AuditFlusher
	logger  *zap.Logger
}

func NewAuditBridge(flusher *AuditFlusher, logger *zap.Logger) *AuditBridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditBridge{flusher: flusher, logger: logger}
}

func (b *AuditBridge) Record(ctx context.Context, event domain.AuditEvent) {
	if b == nil || b.flusher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := b.flusher.Record(ctx, journal.Entry{Event: event}); err != nil {
		b.logger.Error("audit event lost",
			zap.String("kind", event.Kind),
			zap.Int64("user_id", event.UserID),
			zap.Error(err))
	}
}

var _ usecase.AuditTrail = (*AuditBridge)(nil)
