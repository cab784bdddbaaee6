package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/models"
)

const tokenTTL = 72 * time.Hour

// TokenManager signs and validates the bearer tokens the API issues on
// login.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Generate creates a signed token carrying the user id and role.
func (m *TokenManager) Generate(userID int64, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses the token and returns the user id and role it was
// issued for.
func (m *TokenManager) Validate(tokenString string) (int64, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthorizedf("Unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, "", apperr.Unauthorizedf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", apperr.Unauthorizedf("Invalid token")
	}

	// JSON numbers decode as float64.
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", apperr.Unauthorizedf("Invalid subject claim")
	}
	role, _ := claims["role"].(string)

	return int64(sub), models.Role(role), nil
}
