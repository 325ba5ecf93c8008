package domain

import (
	"encoding/json"
	"errors"
)

// Role decides which screens and backend endpoints a session may use.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleShop     Role = "SHOP"
	RoleCustomer Role = "CUSTOMER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleShop, RoleCustomer:
		return true
	}
	return false
}

var ErrInvalidSession = errors.New("session requires both token and user")

// User models the authenticated account as returned by the backend.
type User struct {
	ID          string `json:"id,omitempty"`
	Email       string `json:"email,omitempty"`
	RoleName    Role   `json:"roleName,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	IsBanned    bool   `json:"isBanned,omitempty"`
}

// UnmarshalJSON accepts the backend's "_id" as well as "id".
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// Session is the locally persisted pair of bearer token and user profile.
// The zero value is the unauthenticated session.
type Session struct {
	Token string
	User  *User
}

// IsZero reports whether the session lacks either half.
func (s Session) IsZero() bool {
	return s.Token == "" || s.User == nil
}

// Role returns the session's role, or "" when unauthenticated.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.RoleName
}
