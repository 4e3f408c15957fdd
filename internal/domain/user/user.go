package user

import (
	"strings"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
)

// User is the aggregate root for a platform user.
type User struct {
	id    int64
	name  string
	email string
}

// NewUser creates a new user with validated fields.
func NewUser(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation("user name must not be blank")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	return &User{name: name, email: email}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id int64, name, email string) *User {
	return &User{id: id, name: name, email: email}
}

// ID returns the user's store-assigned identifier.
func (u *User) ID() int64 { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// SetID is called by the store once, when the row is inserted.
func (u *User) SetID(id int64) {
	u.id = id
}

// Update applies a partial update. Nil fields are left untouched.
func (u *User) Update(name, email *string) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return apperr.Validation("user name must not be blank")
		}
		u.name = *name
	}
	if email != nil {
		if err := validateEmail(*email); err != nil {
			return err
		}
		u.email = *email
	}
	return nil
}

func validateEmail(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return apperr.Validation("user email must not be blank")
	}
	at := strings.Index(trimmed, "@")
	if at < 1 || at == len(trimmed)-1 {
		return apperr.Validation("user email is malformed")
	}
	return nil
}
