package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the token payload issued at login
type JWTClaims struct {
	Role      string `json:"role"`
	CoachType string `json:"coach_type,omitempty"`
	jwt.RegisteredClaims
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
