package transport

import (
	"errors"
	"regexp"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	rutPattern   = regexp.MustCompile(`^\d{7,8}-[0-9Kk]$`)
	phonePattern = regexp.MustCompile(`^\+?569\d{8}$`)
)

// RegisterRequest is the registration payload. Registration applies the
// strict password rule (composition, not just length); login does not.
type RegisterRequest struct {
	RUT       string `json:"rut"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RUT,
			validation.Required.Error("rut is required"),
			validation.Match(rutPattern).Error("invalid rut format")),
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(2, 50)),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(2, 50)),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format")),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 20),
			validation.By(strongPassword)),
		validation.Field(&r.Phone,
			validation.Match(phonePattern).Error("invalid phone format")),
		validation.Field(&r.Address,
			validation.Length(5, 100)),
	)
}

// strongPassword requires at least one upper, one lower, one digit and one
// special character.
func strongPassword(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return errors.New("password must contain an upper-case letter, a lower-case letter, a digit and a special character")
	}
	return nil
}

// LoginRequest carries login credentials. Only presence is validated here so
// accounts created before the strict rule can still sign in.
type LoginRequest struct {
	RUT      string `json:"rut"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RUT, validation.Required.Error("rut is required")),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

// SocioRequest carries the supporting documents for a membership request.
type SocioRequest struct {
	IdentityDocument  string `json:"identityDocument"`
	ResidencyDocument string `json:"residencyDocument"`
}

func (r SocioRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IdentityDocument, validation.Required.Error("identity document is required")),
		validation.Field(&r.ResidencyDocument, validation.Required.Error("residency document is required")),
	)
}

// DecisionRequest carries a board ruling on a membership request.
type DecisionRequest struct {
	RequestID int64  `json:"requestId"`
	Decision  string `json:"decision"`
	Reason    string `json:"reason"`
}

func (r DecisionRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.RequestID, validation.Required.Error("requestId is required")),
		validation.Field(&r.Decision,
			validation.Required.Error("decision is required"),
			validation.In("approved", "rejected").Error("decision must be approved or rejected")),
	); err != nil {
		return err
	}
	if r.Decision == "rejected" && r.Reason == "" {
		return validation.Errors{"reason": errors.New("a rejection reason is required")}
	}
	return nil
}
