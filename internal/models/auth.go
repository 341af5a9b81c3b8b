package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the identity attached to an API token.
type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
