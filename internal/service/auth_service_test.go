package service

import (
	"testing"
	"time"

	"github.com/folkadonis/proffessor/internal/config"
	"github.com/folkadonis/proffessor/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func testAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	return NewAuthService(cfg, nil)
}

func TestSignAndValidateToken(t *testing.T) {
	s := testAuthService()
	user := &model.User{ID: uuid.New(), Role: model.RoleUser}

	signed, claims, err := s.SignToken(user)
	if err != nil {
		t.Fatalf("SignToken() error: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected a JTI on signed claims")
	}

	parsed, err := s.ValidateToken(signed)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if parsed.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", parsed.UserID, user.ID)
	}
	if parsed.Role != model.RoleUser {
		t.Errorf("Role = %s, want %s", parsed.Role, model.RoleUser)
	}
	if parsed.ID != claims.ID {
		t.Errorf("JTI = %s, want %s", parsed.ID, claims.ID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	s := testAuthService()
	user := &model.User{ID: uuid.New(), Role: model.RoleUser}

	signed, _, err := s.SignToken(user)
	if err != nil {
		t.Fatalf("SignToken() error: %v", err)
	}

	other := NewAuthService(&config.Config{JWTSecret: "different-secret", JWTExpiry: time.Hour}, nil)
	if _, err := other.ValidateToken(signed); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsWrongMethod(t *testing.T) {
	s := testAuthService()

	// Token signed with none must not pass the HMAC method check.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := s.ValidateToken(signed); err == nil {
		t.Fatal("expected validation to reject the none algorithm")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Minute}
	s := NewAuthService(cfg, nil)
	user := &model.User{ID: uuid.New(), Role: model.RoleUser}

	signed, _, err := s.SignToken(user)
	if err != nil {
		t.Fatalf("SignToken() error: %v", err)
	}

	if _, err := s.ValidateToken(signed); err == nil {
		t.Fatal("expected validation to reject an expired token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	s := testAuthService()

	hash, err := s.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}

	if err := s.CheckPassword(hash, "password123"); err != nil {
		t.Errorf("CheckPassword() with correct password: %v", err)
	}
	if err := s.CheckPassword(hash, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("CheckPassword() with wrong password = %v, want ErrInvalidCredentials", err)
	}
}
