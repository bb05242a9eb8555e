package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims is the verified identity handed to handlers by the auth
// middleware. Tokens are minted by the external auth system; this
// service only verifies them.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
