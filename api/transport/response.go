package transport

import (
	"time"

	"github.com/vecindapp/auth-service/domain"
)

// ErrorBody is the shared error response shape. Stack carries diagnostic
// detail and is populated only outside production mode.
type ErrorBody struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Stack      string `json:"stack,omitempty"`
}

// NewError builds an error body.
func NewError(statusCode int, message, stack string) ErrorBody {
	return ErrorBody{
		Status:     "error",
		StatusCode: statusCode,
		Message:    message,
		Stack:      stack,
	}
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	Profile domain.Profile `json:"profile"`
}

// SocioRequestData identifies a freshly created membership request.
type SocioRequestData struct {
	UserID    int64     `json:"userId"`
	RequestID int64     `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

// SocioRequestResponse is returned by request-socio.
type SocioRequestResponse struct {
	Message string           `json:"message"`
	Data    SocioRequestData `json:"data"`
}

// DecisionData summarizes an applied board decision.
type DecisionData struct {
	RequestID int64     `json:"requestId"`
	Decision  string    `json:"decision"`
	Timestamp time.Time `json:"timestamp"`
}

// DecisionResponse is returned by validate-socio-request.
type DecisionResponse struct {
	Message string       `json:"message"`
	Data    DecisionData `json:"data"`
}
