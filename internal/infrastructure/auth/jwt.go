// Package auth verifies the bearer tokens the conversational front end
// presents on behalf of principals.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
)

// Claims carries the principal identity embedded in a bearer token.
type Claims struct {
	PrincipalID uint   `json:"principal_id"`
	Handle      string `json:"handle"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies principal bearer tokens.
type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

// NewJWTService creates a new JWTService.
func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	if accessExpMinutes <= 0 {
		accessExpMinutes = 60
	}
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

// Generate signs an access token for the principal.
func (s *JWTService) Generate(principalID uint, handle string) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		PrincipalID: principalID,
		Handle:      handle,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.PrincipalID == 0 {
		return nil, fmt.Errorf("token carries no principal")
	}
	return claims, nil
}
