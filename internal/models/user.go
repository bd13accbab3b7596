package models

import (
	"database/sql"
	"time"
)

// User represents a user in the system. PasswordHash is NULL for accounts
// created through a federated identity provider; such accounts cannot
// password-login until a password is set through the reset flow.
type User struct {
	ID               int64
	Username         string
	Email            string
	PasswordHash     sql.NullString
	ResetToken       sql.NullString
	ResetTokenExpiry sql.NullTime
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPassword reports whether the account has a local credential.
func (u *User) HasPassword() bool {
	return u.PasswordHash.Valid && u.PasswordHash.String != ""
}

// Profile is the sanitized view of a user returned to clients.
type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile returns the user without credential fields.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
