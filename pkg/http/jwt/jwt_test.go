package jwt

import (
	"testing"

	goJwt "github.com/golang-jwt/jwt/v5"
)

func TestGenAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	aToken, rToken, err := GenToken("u1", "supervisor", secret, 30, 1440)
	if err != nil {
		t.Fatalf("GenToken failed: %v", err)
	}
	if aToken == "" || rToken == "" {
		t.Fatal("expected non-empty tokens")
	}

	claims, err := ParseToken(aToken, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserId != "u1" {
		t.Errorf("expected userId u1, got %s", claims.UserId)
	}
	if claims.RoleId != "supervisor" {
		t.Errorf("expected roleId supervisor, got %s", claims.RoleId)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	aToken, _, err := GenToken("u1", "agent", []byte("right"), 30, 1440)
	if err != nil {
		t.Fatalf("GenToken failed: %v", err)
	}

	if _, err := ParseToken(aToken, "wrong"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	aToken, _, err := GenToken("u1", "agent", []byte("s"), -10, 1440)
	if err != nil {
		t.Fatalf("GenToken failed: %v", err)
	}

	_, err = ParseToken(aToken, "s")
	if err == nil {
		t.Fatal("expected expired token error")
	}
	if err != goJwt.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseRefreshToken(t *testing.T) {
	_, rToken, err := GenToken("u1", "agent", []byte("s"), 30, 1440)
	if err != nil {
		t.Fatalf("GenToken failed: %v", err)
	}

	userId, err := ParseRefreshToken(rToken, "s")
	if err != nil {
		t.Fatalf("ParseRefreshToken failed: %v", err)
	}
	if userId != "u1" {
		t.Errorf("expected userId u1, got %s", userId)
	}
}

func TestParseRefreshToken_Invalid(t *testing.T) {
	if _, err := ParseRefreshToken("not-a-token", "s"); err == nil {
		t.Error("expected error for garbage token")
	}

	_, rToken, err := GenToken("u1", "agent", []byte("right"), 30, 1440)
	if err != nil {
		t.Fatalf("GenToken failed: %v", err)
	}
	if _, err := ParseRefreshToken(rToken, "wrong"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseRefreshToken_Expired(t *testing.T) {
	_, rToken, err := GenToken("u1", "agent", []byte("s"), 30, -10)
	if err != nil {
		t.Fatalf("GenToken failed: %v", err)
	}

	_, err = ParseRefreshToken(rToken, "s")
	if err != goJwt.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}
