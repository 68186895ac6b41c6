package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		RUT:       "12345678-5",
		FirstName: "Maria",
		LastName:  "Gonzalez",
		Email:     "maria@example.com",
		Password:  "Str0ng!pass",
		Phone:     "+56912345678",
		Address:   "Av. Siempre Viva 742",
	}
}

func TestRegisterRequestValid(t *testing.T) {
	require.NoError(t, validRegister().Validate())

	// Phone and address are optional.
	req := validRegister()
	req.Phone = ""
	req.Address = ""
	assert.NoError(t, req.Validate())
}

func TestRegisterRequestRUT(t *testing.T) {
	for _, rut := range []string{"", "1234567", "123456789-1", "12345678-X", "12.345.678-5"} {
		req := validRegister()
		req.RUT = rut
		assert.Error(t, req.Validate(), "rut %q must be rejected", rut)
	}

	// Lower-case verifier digit is accepted at the edge and normalized later.
	req := validRegister()
	req.RUT = "7654321-k"
	assert.NoError(t, req.Validate())
}

func TestRegisterRequestPassword(t *testing.T) {
	cases := map[string]string{
		"too short":  "S1!a",
		"no upper":   "weak1pass!",
		"no digit":   "Weakpass!!",
		"no special": "Weakpass11",
		"too long":   "Str0ng!passStr0ng!pass",
	}
	for name, password := range cases {
		req := validRegister()
		req.Password = password
		assert.Error(t, req.Validate(), name)
	}
}

func TestRegisterRequestEmailAndPhone(t *testing.T) {
	req := validRegister()
	req.Email = "not-an-email"
	assert.Error(t, req.Validate())

	req = validRegister()
	req.Phone = "12345678"
	assert.Error(t, req.Validate())
}

func TestLoginRequestPresenceOnly(t *testing.T) {
	// Accounts predating the strict password rule must still sign in.
	assert.NoError(t, LoginRequest{RUT: "12345678-5", Password: "weak"}.Validate())
	assert.Error(t, LoginRequest{Password: "weak"}.Validate())
	assert.Error(t, LoginRequest{RUT: "12345678-5"}.Validate())
}

func TestSocioRequestDocuments(t *testing.T) {
	assert.NoError(t, SocioRequest{IdentityDocument: "doc://id", ResidencyDocument: "doc://res"}.Validate())
	assert.Error(t, SocioRequest{ResidencyDocument: "doc://res"}.Validate())
	assert.Error(t, SocioRequest{IdentityDocument: "doc://id"}.Validate())
}

func TestDecisionRequestValidation(t *testing.T) {
	assert.NoError(t, DecisionRequest{RequestID: 1, Decision: "approved"}.Validate())
	assert.NoError(t, DecisionRequest{RequestID: 1, Decision: "rejected", Reason: "docs illegible"}.Validate())

	assert.Error(t, DecisionRequest{Decision: "approved"}.Validate())
	assert.Error(t, DecisionRequest{RequestID: 1, Decision: "maybe"}.Validate())

	// Rejection without a reason is not actionable for the resident.
	assert.Error(t, DecisionRequest{RequestID: 1, Decision: "rejected"}.Validate())
}
