package domain

import "time"

// Role is the privilege level attached to a user. Roles are ascending:
// residents may request membership, members belong to the association, and the
// board decides membership requests.
type Role string

const (
	RoleResident Role = "resident"
	RoleMember   Role = "member"
	RoleBoard    Role = "board"
)

func (r Role) Valid() bool {
	switch r {
	case RoleResident, RoleMember, RoleBoard:
		return true
	}
	return false
}

// User statuses. Accounts are never deleted, only disabled.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// User represents one registered resident. The RUT is the national identifier
// used both as login key and uniqueness constraint. PasswordHash is opaque and
// must never appear in responses or logs.
type User struct {
	ID           int64     `json:"id"`
	RUT          string    `json:"rut"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	PasswordHash string    `json:"-"`
	Status       string    `json:"status"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == StatusActive
}

// Profile is the non-sensitive projection returned by register and login.
type Profile struct {
	ID        int64  `json:"id"`
	RUT       string `json:"rut"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		RUT:       u.RUT,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
