package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/vecindapp/auth-service/domain"
	"github.com/vecindapp/auth-service/pkg/password"
	"github.com/vecindapp/auth-service/pkg/token"
	"github.com/vecindapp/auth-service/repository"
	"github.com/vecindapp/auth-service/usecase"
)

// dummyHash keeps the unknown-RUT login path as expensive as a real password
// check, so response timing does not reveal whether an account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UseCase orchestrates registration and login.
type UseCase struct {
	users    repository.UserRepository
	throttle repository.LoginThrottle
	tokens   *token.Issuer
	audit    usecase.AuditTrail
	logger   *zap.Logger
}

func New(users repository.UserRepository, throttle repository.LoginThrottle, tokens *token.Issuer, audit usecase.AuditTrail, logger *zap.Logger) *UseCase {
	if audit == nil {
		audit = usecase.NopAuditTrail{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		throttle: throttle,
		tokens:   tokens,
		audit:    audit,
		logger:   logger,
	}
}

// RegisterInput carries the shaped registration payload. The transport layer
// has already applied the strict field rules; the workflow re-checks only the
// invariants it owns.
type RegisterInput struct {
	RUT       string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	Password  string
}

// Session is the outcome of a successful register or login.
type Session struct {
	Token   string
	Profile domain.Profile
}

// Register creates a new resident account and signs them in.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	rut := domain.NormalizeRUT(in.RUT)
	if !domain.ValidRUT(rut) {
		return nil, domain.NewError(domain.ErrCodeValidation, "invalid rut format")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewError(domain.ErrCodeValidation, "password must be at least 8 characters")
	}

	if existing, err := uc.users.GetByRUT(ctx, rut); err != nil && !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrRUTTaken
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "hash password", err)
	}

	user := &domain.User{
		RUT:          rut,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		PasswordHash: hash,
		Status:       domain.StatusActive,
		Role:         domain.RoleResident,
	}
	if _, err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	signed, err := uc.tokens.Issue(user.ID, user.RUT, user.Role)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "issue token", err)
	}

	uc.audit.Record(ctx, domain.AuditEvent{
		UserID: user.ID,
		Kind:   domain.AuditUserRegistered,
		Detail: map[string]string{"rut": user.RUT},
	})
	uc.logger.Info("user registered", zap.Int64("user_id", user.ID))

	return &Session{Token: signed, Profile: user.Profile()}, nil
}

// Login authenticates a resident by RUT and password. Unknown RUT and wrong
// password return the identical failure kind.
func (uc *UseCase) Login(ctx context.Context, rut, plaintext string) (*Session, error) {
	if rut == "" || plaintext == "" {
		return nil, domain.NewError(domain.ErrCodeValidation, "rut and password are required")
	}
	rut = domain.NormalizeRUT(rut)

	if locked, err := uc.throttled(ctx, rut); err != nil {
		uc.logger.Warn("login throttle unavailable", zap.Error(err))
	} else if locked {
		uc.audit.Record(ctx, domain.AuditEvent{
			Kind:   domain.AuditLoginLocked,
			Detail: map[string]string{"rut": rut},
		})
		return nil, domain.ErrTooManyAttempts
	}

	user, err := uc.users.GetByRUT(ctx, rut)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			password.Verify(plaintext, dummyHash)
			return nil, uc.failedAttempt(ctx, rut)
		}
		return nil, err
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		return nil, uc.failedAttempt(ctx, rut)
	}

	if !user.IsActive() {
		return nil, domain.ErrAccountDisabled
	}

	signed, err := uc.tokens.Issue(user.ID, user.RUT, user.Role)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "issue token", err)
	}

	if uc.throttle != nil {
		if err := uc.throttle.Reset(ctx, rut); err != nil {
			uc.logger.Warn("login throttle reset failed", zap.Error(err))
		}
	}

	return &Session{Token: signed, Profile: user.Profile()}, nil
}

func (uc *UseCase) throttled(ctx context.Context, rut string) (bool, error) {
	if uc.throttle == nil {
		return false, nil
	}
	return uc.throttle.Locked(ctx, rut)
}

func (uc *UseCase) failedAttempt(ctx context.Context, rut string) error {
	if uc.throttle != nil {
		if _, err := uc.throttle.RecordFailure(ctx, rut); err != nil {
			uc.logger.Warn("login throttle record failed", zap.Error(err))
		}
	}
	uc.audit.Record(ctx, domain.AuditEvent{
		Kind:   domain.AuditLoginFailed,
		Detail: map[string]string{"rut": rut},
	})
	return domain.ErrInvalidCredentials
}
