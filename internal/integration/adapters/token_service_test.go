package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "unit-test-secret"

func mintToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestTokenService_ValidateAccessToken(t *testing.T) {
	service := NewTokenService(testSecret)
	userID := uuid.New()

	t.Run("accepts a valid access token", func(t *testing.T) {
		token := mintToken(t, testSecret, jwt.MapClaims{
			"user_id":    userID.String(),
			"token_type": "access",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})

		claims, err := service.ValidateAccessToken(context.Background(), token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("expected user ID %s, got %s", userID, claims.UserID)
		}
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token := mintToken(t, testSecret, jwt.MapClaims{
			"user_id":    userID.String(),
			"token_type": "access",
			"exp":        time.Now().Add(-time.Hour).Unix(),
		})

		if _, err := service.ValidateAccessToken(context.Background(), token); err == nil {
			t.Fatal("expected an error for an expired token")
		}
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token := mintToken(t, "some-other-secret", jwt.MapClaims{
			"user_id":    userID.String(),
			"token_type": "access",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})

		if _, err := service.ValidateAccessToken(context.Background(), token); err == nil {
			t.Fatal("expected an error for a forged token")
		}
	})

	t.Run("rejects non-access token types", func(t *testing.T) {
		token := mintToken(t, testSecret, jwt.MapClaims{
			"user_id":    userID.String(),
			"token_type": "refresh",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})

		if _, err := service.ValidateAccessToken(context.Background(), token); err == nil {
			t.Fatal("expected an error for a refresh token")
		}
	})

	t.Run("rejects a malformed user ID", func(t *testing.T) {
		token := mintToken(t, testSecret, jwt.MapClaims{
			"user_id":    "not-a-uuid",
			"token_type": "access",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})

		if _, err := service.ValidateAccessToken(context.Background(), token); err == nil {
			t.Fatal("expected an error for a malformed user ID")
		}
	})
}
