package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/repository"
)

type membershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository instantiates a Postgres-backed membership request repository.
func NewMembershipRepository(pool *pgxpool.Pool) repository.MembershipRepository {
	return &membershipRepository{pool: pool}
}

func (r *membershipRepository) FindPendingByUser(ctx context.Context, userID int64) (*domain.MembershipRequest, error) {
	const query = `
		SELECT id, user_id, status, identity_document, residency_document, requested_at, decided_at, rejection_reason
		FROM membership_requests
		WHERE user_id = $1 AND status = $2
	`
	row := r.pool.QueryRow(ctx, query, userID, domain.RequestPending)

	var req domain.MembershipRequest
	var reason *string
	if err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Status,
		&req.IdentityDocument,
		&req.ResidencyDocument,
		&req.RequestedAt,
		&req.DecidedAt,
		&reason,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("find pending membership request", err)
	}
	if reason != nil {
		req.RejectionReason = *reason
	}
	return &req, nil
}

func (r *membershipRepository) Create(ctx context.Context, request *domain.MembershipRequest) (int64, error) {
	if request == nil {
		return 0, domain.ErrInvalidPayload
	}

	const query = `
		INSERT INTO membership_requests (user_id, status, identity_document, residency_document, requested_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, requested_at
	`
	if err := r.pool.QueryRow(ctx, query,
		request.UserID,
		domain.RequestPending,
		request.IdentityDocument,
		request.ResidencyDocument,
	).Scan(&request.ID, &request.RequestedAt); err != nil {
		return 0, wrapStoreErr("create membership request", err)
	}
	request.Status = domain.RequestPending
	return request.ID, nil
}

// Decide applies the ruling to a still-pending request. Approval and the
// owner's promotion to member commit in one transaction, so a request can
// never be approved while the user keeps the resident role.
func (r *membershipRepository) Decide(ctx context.Context, decision repository.Decision) error {
	if !domain.ValidDecision(decision.Decision) {
		return domain.ErrInvalidPayload
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapStoreErr("begin decide tx", err)
	}
	defer tx.Rollback(ctx)

	const update = `
		UPDATE membership_requests
		SET status = $2,
			decided_at = CASE WHEN $2 = 'approved' THEN $3 ELSE NULL END,
			rejection_reason = CASE WHEN $2 = 'rejected' THEN $4 ELSE NULL END
		WHERE id = $1 AND status = 'pending'
		RETURNING user_id
	`
	var userID int64
	if err := tx.QueryRow(ctx, update,
		decision.RequestID,
		decision.Decision,
		decision.DecidedAt,
		decision.Reason,
	).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRequestNotFound
		}
		return wrapStoreErr("update membership request", err)
	}

	if decision.Decision == domain.DecisionApproved {
		tag, err := tx.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, userID, domain.RoleMember)
		if err != nil {
			return wrapStoreErr("promote user", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.WrapError(domain.ErrCodeInternal, "promote user", fmt.Errorf("request %d references missing user %d", decision.RequestID, userID))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapStoreErr("commit decide tx", err)
	}
	return nil
}
