package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByRUT(ctx context.Context, rut string) (*domain.User, error) {
	const query = `
		SELECT id, rut, first_name, last_name, email, phone, address, password_hash, status, role, created_at
		FROM users
		WHERE rut = $1
	`
	row := r.pool.QueryRow(ctx, query, rut)

	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.RUT,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.Address,
		&user.PasswordHash,
		&user.Status,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, wrapStoreErr("get user by rut", err)
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if user == nil {
		return 0, domain.ErrInvalidPayload
	}

	const query = `
		INSERT INTO users (rut, first_name, last_name, email, phone, address, password_hash, status, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		user.RUT,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
		user.Address,
		user.PasswordHash,
		user.Status,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		if constraint, ok := violatedConstraint(err); ok {
			if strings.Contains(constraint, "email") {
				return 0, domain.ErrEmailTaken
			}
			return 0, domain.ErrRUTTaken
		}
		return 0, wrapStoreErr("create user", err)
	}

	return user.ID, nil
}
