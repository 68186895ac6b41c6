package repository

import (
	"context"
	"time"

	"github.com/vecindapp/auth-service/domain"
)

// Decision carries a board member's ruling on a membership request.
type Decision struct {
	RequestID int64
	Decision  string
	Reason    string
	DecidedAt time.Time
}

// MembershipRepository persists membership requests. Decide applies the
// ruling and, on approval, promotes the owning user to member in the same
// transaction; it returns domain.ErrRequestNotFound when no pending request
// row was affected.
type MembershipRepository interface {
	FindPendingByUser(ctx context.Context, userID int64) (*domain.MembershipRequest, error)
	Create(ctx context.Context, request *domain.MembershipRequest) (int64, error)
	Decide(ctx context.Context, decision Decision) error
}
