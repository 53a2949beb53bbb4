package model

import "github.com/golang-jwt/jwt/v5"

// Identity is what the identity provider asserts about a caller. The
// service treats Subject and IsAdmin as given facts; it never computes
// them itself.
type Identity struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// IdentityClaims is the JWT payload carried by identity tokens.
type IdentityClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for POST /v1/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the response body for POST /v1/auth/login
type LoginResponse struct {
	Token   string `json:"token"`
	Subject string `json:"subject"`
	IsAdmin bool   `json:"isAdmin"`
}
