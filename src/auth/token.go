package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by platform access tokens.
type Claims struct {
	Username  string   `json:"username"`
	Roles     []string `json:"roles"`
	Clearance string   `json:"clearance"`
	jwt.RegisteredClaims
}

// IssueToken signs an access token for the session, valid for the
// session TTL.
func (m *Manager) IssueToken(s Session) (string, error) {
	if m.cfg.JWTSecret == "" {
		return "", errors.New("jwt secret not configured")
	}
	claims := Claims{
		Username:  s.Username,
		Roles:     s.Roles,
		Clearance: s.Clearance,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.cfg.JWTSecret))
}

// ParseToken validates a signed access token and returns its claims.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(m.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
