// Package users models the people who may manage storages.
package users

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrUnknownRole = errors.New("unknown role")

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOrdinary Role = "ordinary"
)

func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleAdmin, RoleOrdinary:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
}

func (r Role) String() string {
	return string(r)
}

func (r *Role) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("role: unsupported column type %T", src)
	}

	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// User is the authorization view of an account.
type User struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

// InternalUser signs in with a login and password kept by this system.
type InternalUser struct {
	ID       uuid.UUID
	Login    Login
	Password Password
	Role     Role
}

func NewInternalUser(login Login, password Password, role Role) InternalUser {
	return InternalUser{ID: uuid.New(), Login: login, Password: password, Role: role}
}

func (u InternalUser) User() User {
	return User{ID: u.ID, Role: u.Role}
}

// ExternalUser is authenticated by an outside identity provider.
type ExternalUser struct {
	ID         uuid.UUID
	ExternalID ExternalID
	Role       Role
}

func NewExternalUser(externalID ExternalID, role Role) ExternalUser {
	return ExternalUser{ID: uuid.New(), ExternalID: externalID, Role: role}
}

func (u ExternalUser) User() User {
	return User{ID: u.ID, Role: u.Role}
}
