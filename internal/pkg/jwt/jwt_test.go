package jwt

import (
	"testing"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, exp, err := GenerateToken(types.UserWithAuth{ID: "u-1", Name: "Aung", Role: enum.RESELLER})
	if err != nil || token == "" || exp == nil {
		t.Fatalf("GenerateToken = %q, %v, %v", token, exp, err)
	}

	user, err := ValidateToken("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if user.ID != "u-1" || user.EffectiveRole() != enum.RESELLER {
		t.Fatalf("user = %+v", user)
	}
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	token, _, err := GenerateToken(types.UserWithAuth{ID: "u-1"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "two")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestValidateTokenRejectsUnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, _, err := GenerateToken(types.UserWithAuth{ID: "u-1", Role: "admin"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected validation error for unknown role")
	}
}

func TestValidateTokenRejectsForeignIssuer(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: types.UserWithAuth{ID: "u-1"},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ValidateToken(signed); err == nil {
		t.Fatal("expected issuer error")
	}
}
