package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"rocketboost-admin/logging"
	"rocketboost-admin/models"
)

const (
	tokenTTL    = 24 * time.Hour
	tokenIssuer = "rocketboost-admin"
)

// AuthService checks the admin credentials and issues HS256 bearer tokens
// Implements AuthServiceInterface
type AuthService struct {
	username     string
	passwordHash []byte
	secret       []byte
	now          func() time.Time
}

// NewAuthService creates a new AuthService. passwordHash is a bcrypt hash.
func NewAuthService(username, passwordHash, secret string) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		now:          time.Now,
	}
}

// Ensure AuthService implements AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)

// Login verifies the credentials and returns a signed token
func (s *AuthService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	if len(s.secret) == 0 || len(s.passwordHash) == 0 {
		logging.Sugar.Warn("❌ Login: JWT_SECRET or ADMIN_PASSWORD_HASH not configured")
		return nil, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	// bcrypt runs for unknown usernames too
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		logging.Sugar.Warnf("❌ Login: rejected for user %q", req.Username)
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   s.username,
		Issuer:    tokenIssuer,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logging.Sugar.Infof("✅ Login: %s", s.username)
	return &models.LoginResponse{Token: signed, ExpiresAt: expiresAt.UTC()}, nil
}

// ParseToken validates signature, issuer and expiry
func (s *AuthService) ParseToken(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// HashPassword returns the bcrypt hash to store in ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
