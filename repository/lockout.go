package repository

import "context"

// LoginThrottle counts failed login attempts per RUT inside a rolling window.
type LoginThrottle interface {
	// Locked reports whether the RUT has exhausted its attempts.
	Locked(ctx context.Context, rut string) (bool, error)
	// RecordFailure bumps the counter and returns the new attempt count.
	RecordFailure(ctx context.Context, rut string) (int64, error)
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, rut string) error
}
