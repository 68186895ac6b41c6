package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecindapp/auth-service/domain"
)

const testSecret = "unit-test-secret"

func issuerAt(t *testing.T, at time.Time) *Issuer {
	t.Helper()
	return NewIssuer(testSecret, "vecindapp", WithClock(func() time.Time { return at }))
}

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer(testSecret, "vecindapp")

	signed, err := iss.Issue(42, "12345678-5", domain.RoleResident)
	require.NoError(t, err)

	claims, err := iss.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "12345678-5", claims.RUT)
	assert.Equal(t, domain.RoleResident, claims.Role)
	assert.Equal(t, "vecindapp", claims.Issuer)
}

func TestVerifyInsideValidityWindow(t *testing.T) {
	// Issued 23h59m ago: still valid for another minute.
	iss := issuerAt(t, time.Now().Add(-23*time.Hour-59*time.Minute))
	signed, err := iss.Issue(7, "7654321-K", domain.RoleMember)
	require.NoError(t, err)

	claims, err := NewIssuer(testSecret, "vecindapp").Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, claims.Role)
}

func TestVerifyExpired(t *testing.T) {
	// Issued 24h01m ago: one minute past expiry.
	iss := issuerAt(t, time.Now().Add(-24*time.Hour-time.Minute))
	signed, err := iss.Issue(7, "7654321-K", domain.RoleMember)
	require.NoError(t, err)

	_, err = NewIssuer(testSecret, "vecindapp").Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := NewIssuer("other-secret", "vecindapp").Issue(1, "12345678-5", domain.RoleBoard)
	require.NoError(t, err)

	_, err = NewIssuer(testSecret, "vecindapp").Verify(signed)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := NewIssuer(testSecret, "vecindapp").Verify("not.a.token")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestVerifyIncompleteClaims(t *testing.T) {
	// A structurally valid token missing required identity fields.
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := raw.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewIssuer(testSecret, "vecindapp").Verify(signed)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestVerifyRejectsNonHMAC(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RUT:    "12345678-5",
		Role:   domain.RoleBoard,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewIssuer(testSecret, "vecindapp").Verify(unsigned)
	assert.ErrorIs(t, err, ErrMalformed)
}
