package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OperatorClaims represents the claims in an operator access token. Tokens
// are issued by the back-office auth system; this service only verifies them.
type OperatorClaims struct {
	OperatorID uuid.UUID `json:"operator_id"`
	Name       string    `json:"name"`
	Roles      []string  `json:"roles"`
	jwt.RegisteredClaims
}

// TokenVerifier validates operator access tokens
type TokenVerifier struct {
	secretKey []byte
}

// NewTokenVerifier creates a verifier for HS256-signed operator tokens
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secretKey: []byte(secret)}
}

// Verify parses and validates an access token and returns its claims
func (v *TokenVerifier) Verify(tokenString string) (*OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*OperatorClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
