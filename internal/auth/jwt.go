package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims carried in access tokens. InstitutionID is embedded at login so
// institution-scoped checks never need a per-request profile lookup.
type Claims struct {
	UserID        string          `json:"uid"`
	Role          models.UserRole `json:"role"`
	InstitutionID string          `json:"inst,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and parses signed access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Generate(userID string, role models.UserRole, institutionID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:        userID,
		Role:          role,
		InstitutionID: institutionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
