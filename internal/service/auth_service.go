package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/folkadonis/proffessor/internal/config"
	"github.com/folkadonis/proffessor/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords so
// the two are indistinguishable to a caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID  `json:"user_id"`
	Role   model.Role `json:"role"`
}

// AuthService handles password hashing, JWT issuance, and the login
// session registry in Redis.
type AuthService struct {
	cfg *config.Config
	rdb *redis.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// SignToken creates a signed JWT for a user. It does not touch the session
// registry; use GenerateToken for logins.
func (s *AuthService) SignToken(user *model.User) (string, *Claims, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: user.ID,
		Role:   user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// GenerateToken creates a JWT and registers its JTI as the user's active
// session. A later login overwrites the entry, superseding earlier tokens.
func (s *AuthService) GenerateToken(ctx context.Context, user *model.User) (string, error) {
	signed, claims, err := s.SignToken(user)
	if err != nil {
		return "", err
	}

	sessionKey := config.CacheKey.UserSessionKey(user.ID.String())
	if err := s.rdb.Set(ctx, sessionKey, claims.ID, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token's JTI matches the active session in
// Redis. Logout and admin session resets invalidate tokens this way.
func (s *AuthService) ValidateSession(ctx context.Context, userID uuid.UUID, jti string) error {
	sessionKey := config.CacheKey.UserSessionKey(userID.String())
	stored, err := s.rdb.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return errors.New("no active session")
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return errors.New("session superseded")
	}
	return nil
}

// ClearSession removes a user's session from Redis, invalidating any
// outstanding token.
func (s *AuthService) ClearSession(ctx context.Context, userID uuid.UUID) error {
	return s.rdb.Del(ctx, config.CacheKey.UserSessionKey(userID.String())).Err()
}
