package models

import "time"

// User is the canonical identity record. An account is reachable via login
// only while it has a password hash, a linked provider ID, or both.
type User struct {
	ID           string
	Email        string
	Username     string
	Firstname    string
	Lastname     string
	PasswordHash string // empty for pure-OAuth accounts
	FacebookID   string // empty unless the account is linked to Facebook
	IsVerified   bool
	Image        string
	CreatedAt    time.Time
}

// Sanitized returns a copy of the user with the password hash stripped.
// Every user object leaving the service layer must pass through here.
func (u *User) Sanitized() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}
