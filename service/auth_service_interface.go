package service

import (
	"github.com/golang-jwt/jwt/v5"

	"rocketboost-admin/models"
)

// AuthServiceInterface defines the contract for admin login and token checks
type AuthServiceInterface interface {
	Login(req *models.LoginRequest) (*models.LoginResponse, error)
	ParseToken(token string) (*jwt.RegisteredClaims, error)
}
