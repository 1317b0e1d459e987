package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-movie-catalog/internal/model"
)

const bcryptCost = 12

// UserStore is the credential store surface the auth service needs.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u model.User) error
	Count(ctx context.Context) (int, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(jwtSecret string, accessTTL time.Duration, users UserStore) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("jwt secret is required")
	}

	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}, nil
}

// Login verifies the credentials and mints an access token asserting the
// username. Unknown username and wrong password fail identically so the
// response never reveals which one was at fault.
func (s *AuthService) Login(ctx context.Context, username string, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", model.ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.ErrInvalidCredentials
	}

	return s.signToken(jwt.MapClaims{
		"sub": user.Username,
		"jti": uuid.NewString(),
		"iat": time.Now().UTC().Unix(),
		"exp": time.Now().UTC().Add(s.accessTTL).Unix(),
	})
}

// ValidateToken parses and verifies a bearer token. The claims carry only
// the username; callers that need the role must resolve it through
// ResolveRole.
func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	claims := &model.AuthClaims{}
	claims.Username, _ = claimsMap["sub"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)

	if claims.Username == "" {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}

// ResolveRole looks up the user's current role from the credential store.
// The role is never trusted from the token payload.
func (s *AuthService) ResolveRole(ctx context.Context, username string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// SeedUsers inserts the two fixed bootstrap accounts when the credential
// store is empty. Hardcoded credentials are a preserved compatibility
// contract, not a recommendation.
func (s *AuthService) SeedUsers(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin", model.RoleAdmin},
		{"user", "user", model.RoleUser},
	}

	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", seed.username, err)
		}

		if err := s.users.Create(ctx, model.User{
			Username:     seed.username,
			PasswordHash: string(hash),
			Role:         seed.role,
		}); err != nil {
			return fmt.Errorf("seed user %q: %w", seed.username, err)
		}
	}

	slog.Info("seeded default users", "count", len(seeds))
	return nil
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
