package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndValidateToken(t *testing.T) {
	id := primitive.NewObjectID()
	tok, err := GenerateAccessToken(id, "admin@fleet.io", "super admin", 4, "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateToken(tok.AccessToken, "secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != id || claims.Role != "super admin" || claims.RoleID != 4 {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := ValidateToken(tok.AccessToken, "other"); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	tok, err := GenerateAccessToken(primitive.NewObjectID(), "a@b.c", "user", 1, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := ValidateToken(tok.AccessToken, "secret"); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
