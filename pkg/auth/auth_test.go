package auth

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "maria", "recepcionista")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "maria" {
		t.Errorf("Username = %q, want maria", claims.Username)
	}
	if claims.Role != "recepcionista" {
		t.Errorf("Role = %q, want recepcionista", claims.Role)
	}
	if claims.Issuer != "taller-backend" {
		t.Errorf("Issuer = %q, want taller-backend", claims.Issuer)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
	if _, err := ValidateToken(""); err == nil {
		t.Error("empty token accepted")
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	token, err := GenerateToken(1, "admin", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("tampered signature accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secreto1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secreto1" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "secreto1") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "secreto2") {
		t.Error("wrong password accepted")
	}
}
