package repository

import (
	"context"

	"github.com/vecindapp/auth-service/domain"
)

// UserRepository is the store adapter the workflows depend on. Lookups key on
// the normalized RUT; Create returns the generated id and reports a conflict
// when the RUT or email is already taken.
type UserRepository interface {
	GetByRUT(ctx context.Context, rut string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (int64, error)
}
