package domain

import "time"

// Membership request decisions.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Membership request states. A request starts pending and is decided exactly
// once; decided requests are immutable. A new request may be submitted after a
// rejection, only a pending one blocks resubmission.
const (
	RequestPending  = "pending"
	RequestApproved = DecisionApproved
	RequestRejected = DecisionRejected
)

// MembershipRequest is a resident-initiated, board-decided workflow item.
// DecidedAt is set only on approval; RejectionReason only on rejection.
type MembershipRequest struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	Status            string     `json:"status"`
	IdentityDocument  string     `json:"identity_document"`
	ResidencyDocument string     `json:"residency_document"`
	RequestedAt       time.Time  `json:"requested_at"`
	DecidedAt         *time.Time `json:"decided_at,omitempty"`
	RejectionReason   string     `json:"rejection_reason,omitempty"`
}

func (r *MembershipRequest) IsPending() bool {
	return r != nil && r.Status == RequestPending
}

// ValidDecision reports whether s is a terminal decision value.
func ValidDecision(s string) bool {
	return s == DecisionApproved || s == DecisionRejected
}
