package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/repository"
)

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates a Postgres-backed audit event repository.
func NewAuditRepository(pool *pgxpool.Pool) repository.AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	const query = `
		INSERT INTO audit_events (id, user_id, kind, detail, occurred_at)
		VALUES ($1, NULLIF($2, 0), $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	detail := marshalDetail(event.Detail)
	if _, err := r.pool.Exec(ctx, query,
		event.ID,
		event.UserID,
		event.Kind,
		detail,
		event.OccurredAt,
	); err != nil {
		return wrapStoreErr("insert audit event", err)
	}
	return nil
}

func marshalDetail(detail map[string]string) []byte {
	if len(detail) == 0 {
		return nil
	}
	b, err := json.Marshal(detail)
	if err != nil {
		return nil
	}
	return b
}
