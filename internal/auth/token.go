package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

const tokenTTL = 24 * time.Hour

var errInvalidToken = errors.New("invalid token")

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// AuthToken issues and verifies signed JWT tokens
type AuthToken struct {
	key []byte
}

// NewAuthToken creates new AuthToken instance with signing key
func NewAuthToken(key []byte) *AuthToken {
	return &AuthToken{key: key}
}

// CreateToken returns a signed token for the user
func (at *AuthToken) CreateToken(user *models.User) (string, error) {
	expiredAt := time.Now().Add(tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiredAt),
		},
		UserID: user.ID.String(),
	})

	return token.SignedString(at.key)
}

// VerifyToken parses and validates a token string
func (at *AuthToken) VerifyToken(tokenString string) (*models.TokenPayload, error) {
	parsed := claims{}

	token, err := jwt.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return at.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errInvalidToken
	}

	userID, err := uuid.Parse(parsed.UserID)
	if err != nil {
		return nil, errInvalidToken
	}

	return &models.TokenPayload{
		UserID:    userID,
		ExpiredAt: parsed.ExpiresAt.Time,
	}, nil
}
