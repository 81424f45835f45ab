package models

import "time"

// Role controls administrative capabilities and credit-reset exemption.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is a credit-bearing actor. Credits never drop below zero; every
// successful scan consumes exactly one.
type Account struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Role      Role      `json:"role" db:"role"`
	Credits   int       `json:"credits" db:"credits"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the account has administrative rights.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
