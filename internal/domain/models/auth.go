package models

import "github.com/golang-jwt/jwt/v5"

// Claims are the token claims the service relies on. Subject carries the
// numeric account id as a string.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
