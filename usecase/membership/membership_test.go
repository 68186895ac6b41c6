package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/repository"
)

type fakeMembershipRepo struct {
	byID     map[int64]*domain.MembershipRequest
	promoted map[int64]bool
	nextID   int64
	failTx   bool
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{
		byID:     map[int64]*domain.MembershipRequest{},
		promoted: map[int64]bool{},
		nextID:   1,
	}
}

func (f *fakeMembershipRepo) FindPendingByUser(_ context.Context, userID int64) (*domain.MembershipRequest, error) {
	for _, req := range f.byID {
		if req.UserID == userID && req.Status == domain.RequestPending {
			copied := *req
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMembershipRepo) Create(_ context.Context, request *domain.MembershipRequest) (int64, error) {
	request.ID = f.nextID
	f.nextID++
	request.Status = domain.RequestPending
	request.RequestedAt = time.Now()
	copied := *request
	f.byID[request.ID] = &copied
	return request.ID, nil
}

// Decide mirrors the transactional store contract: on simulated partial
// failure neither the request state nor the promotion is applied.
func (f *fakeMembershipRepo) Decide(_ context.Context, decision repository.Decision) error {
	req, ok := f.byID[decision.RequestID]
	if !ok || req.Status != domain.RequestPending {
		return domain.ErrRequestNotFound
	}
	if f.failTx {
		return domain.WrapError(domain.ErrCodeInternal, "decide tx failed", assert.AnError)
	}
	req.Status = decision.Decision
	if decision.Decision == domain.DecisionApproved {
		at := decision.DecidedAt
		req.DecidedAt = &at
		f.promoted[req.UserID] = true
	} else {
		req.RejectionReason = decision.Reason
	}
	return nil
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestRequest(t *testing.T) {
	repo := newFakeMembershipRepo()
	uc := New(repo, nil, nil)

	req, err := uc.Request(context.Background(), 7, "doc-id-1", "doc-res-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), req.ID)
	assert.Equal(t, domain.RequestPending, req.Status)
	assert.False(t, req.RequestedAt.IsZero())
}

func TestRequestMissingDocuments(t *testing.T) {
	uc := New(newFakeMembershipRepo(), nil, nil)

	_, err := uc.Request(context.Background(), 7, "", "doc-res-1")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	_, err = uc.Request(context.Background(), 7, "doc-id-1", "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
}

func TestRequestDuplicatePending(t *testing.T) {
	repo := newFakeMembershipRepo()
	uc := New(repo, nil, nil)

	_, err := uc.Request(context.Background(), 7, "doc-id-1", "doc-res-1")
	require.NoError(t, err)

	// Document content does not matter, the pending request blocks.
	_, err = uc.Request(context.Background(), 7, "other-id", "other-res")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeDuplicateRequest))
}

func TestRequestAllowedAfterRejection(t *testing.T) {
	repo := newFakeMembershipRepo()
	uc := New(repo, nil, nil, WithClock(fixedClock()))

	first, err := uc.Request(context.Background(), 7, "doc-id-1", "doc-res-1")
	require.NoError(t, err)

	_, err = uc.Decide(context.Background(), 99, DecideInput{
		RequestID: first.ID,
		Decision:  domain.DecisionRejected,
		Reason:    "documents unreadable",
	})
	require.NoError(t, err)

	_, err = uc.Request(context.Background(), 7, "doc-id-2", "doc-res-2")
	assert.NoError(t, err)
}

func TestDecideApprove(t *testing.T) {
	repo := newFakeMembershipRepo()
	uc := New(repo, nil, nil, WithClock(fixedClock()))

	req, err := uc.Request(context.Background(), 7, "doc-id-1", "doc-res-1")
	require.NoError(t, err)

	outcome, err := uc.Decide(context.Background(), 99, DecideInput{
		RequestID: req.ID,
		Decision:  domain.DecisionApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionApproved, outcome.Decision)
	assert.Equal(t, fixedClock()(), outcome.DecidedAt)

	stored := repo.byID[req.ID]
	assert.Equal(t, domain.RequestApproved, stored.Status)
	require.NotNil(t, stored.DecidedAt)
	assert.True(t, repo.promoted[7], "approval must promote the owning user")
}

func TestDecideApproveAtomicity(t *testing.T) {
	repo := newFakeMembershipRepo()
	uc := New(repo, nil, nil)

	req, err := uc.Request(context.Background(), 7, "doc-id-1", "doc-res-1")
	require.NoError(t, err)

	repo.failTx = true
	_, err = uc.Decide(context.Background(), 99, DecideInput{
		RequestID: req.ID,
		Decision:  domain.DecisionApproved,
	})
	require.Error(t, err)

	// Partial failure leaves both sides untouched.
	assert.Equal(t, domain.RequestPending, repo.byID[req.ID].Status)
	assert.False(t, repo.promoted[7])
}

func TestDecideReject(t *testing.T) {
	repo := newFakeMembershipRepo()
	uc := New(repo, nil, nil)

	req, err := uc.Request(context.Background(), 7, "doc-id-1", "doc-res-1")
	require.NoError(t, err)

	outcome, err := uc.Decide(context.Background(), 99, DecideInput{
		RequestID: req.ID,
		Decision:  domain.DecisionRejected,
		Reason:    "residency document expired",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionRejected, outcome.Decision)

	stored := repo.byID[req.ID]
	assert.Equal(t, domain.RequestRejected, stored.Status)
	assert.Equal(t, "residency document expired", stored.RejectionReason)
	assert.Nil(t, stored.DecidedAt)
	assert.False(t, repo.promoted[7])
}

func TestDecideRejectWithoutReason(t *testing.T) {
	uc := New(newFakeMembershipRepo(), nil, nil)

	_, err := uc.Decide(context.Background(), 99, DecideInput{
		RequestID: 1,
		Decision:  domain.DecisionRejected,
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
}

func TestDecideInvalidInput(t *testing.T) {
	uc := New(newFakeMembershipRepo(), nil, nil)

	_, err := uc.Decide(context.Background(), 99, DecideInput{Decision: domain.DecisionApproved})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))

	_, err = uc.Decide(context.Background(), 99, DecideInput{RequestID: 1, Decision: "maybe"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeValidation))
}

func TestDecideNotFound(t *testing.T) {
	uc := New(newFakeMembershipRepo(), nil, nil)

	_, err := uc.Decide(context.Background(), 99, DecideInput{
		RequestID: 404,
		Decision:  domain.DecisionApproved,
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestDecideAlreadyDecided(t *testing.T) {
	repo := newFakeMembershipRepo()
	uc := New(repo, nil, nil)

	req, err := uc.Request(context.Background(), 7, "doc-id-1", "doc-res-1")
	require.NoError(t, err)

	_, err = uc.Decide(context.Background(), 99, DecideInput{RequestID: req.ID, Decision: domain.DecisionApproved})
	require.NoError(t, err)

	_, err = uc.Decide(context.Background(), 99, DecideInput{RequestID: req.ID, Decision: domain.DecisionRejected, Reason: "x"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
