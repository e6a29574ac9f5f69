// Package auth implements JWT bearer authentication and role authorization
// for the API.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/udrembiga/manajemen-ud/internal/config"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

// Claims are the token claims issued at login.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies access tokens.
type Service struct {
	secret []byte
	expiry time.Duration
}

// NewService creates the token service from the configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{
		secret: []byte(cfg.Auth.JWTSecret),
		expiry: time.Duration(cfg.Auth.TokenExpiryMinutes) * time.Minute,
	}
}

// IssueToken signs a token for the given user.
func (s *Service) IssueToken(u *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		Username: u.Username,
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(u.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return token, nil
}

// ParseToken verifies a token and resolves the typed identity it carries.
func (s *Service) ParseToken(token string) (*Identity, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(_ *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:   userID,
		Username: claims.Username,
		Role:     models.Role(claims.Role),
	}, nil
}
