package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/harithaceylon/storefront-backend/pkg/config"
	"github.com/harithaceylon/storefront-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "haritha-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	sessionID := uuid.New()

	signed, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{
		SessionID: sessionID,
		Role:      enums.SessionRoleShopper,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseSessionToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != sessionID {
		t.Fatalf("session id mismatch: %s", claims.SessionID)
	}
	if claims.Role != enums.SessionRoleShopper {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
}

func TestMintSessionTokenValidation(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()

	if _, err := MintSessionToken(config.JWTConfig{}, time.Now(), SessionTokenPayload{Role: enums.SessionRoleShopper}); err == nil {
		t.Fatal("expected error without secret")
	}
	if _, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{Role: enums.SessionRole("ghost")}); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), SessionTokenPayload{
		SessionID: uuid.New(),
		Role:      enums.SessionRoleShopper,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseSessionToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseSessionTokenRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{
		SessionID: uuid.New(),
		Role:      enums.SessionRoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseSessionToken(other, signed); err == nil {
		t.Fatal("expected issuer mismatch to be rejected")
	}
}
