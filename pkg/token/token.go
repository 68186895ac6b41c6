package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/vecindapp/auth-service/domain"
)

// Validity is the fixed lifetime of every issued assertion. There is no
// refresh or revocation path; a token stays valid until it expires.
const Validity = 24 * time.Hour

// Verification failure outcomes. Callers behave differently for an expired
// token than for a forged one, so the three cases stay distinguishable.
var (
	ErrExpired    = errors.New("token has expired")
	ErrMalformed  = errors.New("token is malformed or has an invalid signature")
	ErrIncomplete = errors.New("token claims are incomplete")
)

// Claims is the self-contained identity assertion carried by each token.
type Claims struct {
	UserID int64       `json:"user_id"`
	RUT    string      `json:"rut"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session assertions with a process-wide secret.
// The secret is loaded once at startup and injected here; it is never read
// from the environment after construction.
type Issuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option customizes an Issuer.
type Option func(*Issuer)

// WithClock overrides the issuance clock, used by tests to mint tokens at a
// chosen point in time.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

func NewIssuer(secret, issuer string, opts ...Option) *Issuer {
	i := &Issuer{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue produces a signed HS256 token binding the user's id, RUT and role,
// expiring Validity from now.
func (i *Issuer) Issue(userID int64, rut string, role domain.Role) (string, error) {
	now := i.now()
	claims := Claims{
		UserID: userID,
		RUT:    rut,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(Validity)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    i.issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify checks signature and expiration and returns the embedded claims.
// Failures map to exactly one of ErrExpired, ErrMalformed or ErrIncomplete.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	if claims.UserID == 0 || claims.RUT == "" || claims.Role == "" {
		return nil, ErrIncomplete
	}
	return claims, nil
}
