package membership

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/repository"
	"github.com/vecindapp/auth-service/usecase"
)

// UseCase orchestrates the membership upgrade workflow: residents submit a
// request with supporting documents, the board decides it.
type UseCase struct {
	requests repository.MembershipRepository
	audit    usecase.AuditTrail
	logger   *zap.Logger
	now      func() time.Time
}

// Option customizes a UseCase.
type Option func(*UseCase)

// WithClock overrides the decision timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func New(requests repository.MembershipRepository, audit usecase.AuditTrail, logger *zap.Logger, opts ...Option) *UseCase {
	if audit == nil {
		audit = usecase.NopAuditTrail{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		requests: requests,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Request submits a membership upgrade request for the authenticated user.
// Only a pending request blocks resubmission; a rejected one does not.
func (uc *UseCase) Request(ctx context.Context, userID int64, identityDoc, residencyDoc string) (*domain.MembershipRequest, error) {
	if identityDoc == "" || residencyDoc == "" {
		return nil, domain.NewError(domain.ErrCodeValidation, "identity and residency documents are required")
	}

	pending, err := uc.requests.FindPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, domain.ErrDuplicateRequest
	}

	request := &domain.MembershipRequest{
		UserID:            userID,
		IdentityDocument:  identityDoc,
		ResidencyDocument: residencyDoc,
	}
	if _, err := uc.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, domain.AuditEvent{
		UserID: userID,
		Kind:   domain.AuditMembershipRequested,
		Detail: map[string]string{"request_id": strconv.FormatInt(request.ID, 10)},
	})
	uc.logger.Info("membership request submitted",
		zap.Int64("user_id", userID),
		zap.Int64("request_id", request.ID))

	return request, nil
}

// DecideInput carries a board ruling.
type DecideInput struct {
	RequestID int64
	Decision  string
	Reason    string
}

// Outcome summarizes an applied decision.
type Outcome struct {
	RequestID int64
	Decision  string
	DecidedAt time.Time
}

// Decide applies a board decision to a pending request. Approval promotes the
// owning user to member atomically with the request update.
func (uc *UseCase) Decide(ctx context.Context, boardUserID int64, in DecideInput) (*Outcome, error) {
	if in.RequestID <= 0 {
		return nil, domain.NewError(domain.ErrCodeValidation, "requestId is required")
	}
	if !domain.ValidDecision(in.Decision) {
		return nil, domain.NewError(domain.ErrCodeValidation, "decision must be approved or rejected")
	}
	if in.Decision == domain.DecisionRejected && in.Reason == "" {
		return nil, domain.NewError(domain.ErrCodeValidation, "a rejection reason is required")
	}

	decidedAt := uc.now()
	if err := uc.requests.Decide(ctx, repository.Decision{
		RequestID: in.RequestID,
		Decision:  in.Decision,
		Reason:    in.Reason,
		DecidedAt: decidedAt,
	}); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, domain.AuditEvent{
		UserID: boardUserID,
		Kind:   domain.AuditMembershipDecided,
		Detail: map[string]string{
			"request_id": strconv.FormatInt(in.RequestID, 10),
			"decision":   in.Decision,
		},
	})
	uc.logger.Info("membership request decided",
		zap.Int64("request_id", in.RequestID),
		zap.String("decision", in.Decision),
		zap.Int64("decided_by", boardUserID))

	return &Outcome{
		RequestID: in.RequestID,
		Decision:  in.Decision,
		DecidedAt: decidedAt,
	}, nil
}
