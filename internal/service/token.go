package service

import "github.com/superfruitcenter/fruitmart/internal/models"

// TokenService issues and verifies authentication tokens
type TokenService interface {
	CreateToken(user *models.User) (string, error)
	VerifyToken(tokenString string) (*models.TokenPayload, error)
}
