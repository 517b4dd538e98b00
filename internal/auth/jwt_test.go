package auth

import (
	"strings"
	"testing"
	"time"

	"notes-platform/internal/config"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		Issuer:          "notes-platform",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestNewManager_RejectsSharedSecret(t *testing.T) {
	_, err := NewManager(config.AuthConfig{AccessSecret: "same", RefreshSecret: "same"})
	if err == nil {
		t.Fatalf("expected error for shared secret")
	}
}

func TestIssueAndVerifyAccessToken_RoundTrip(t *testing.T) {
	m := testManager(t)

	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.IssueAccessToken(now, "alice", []string{"Employee", "Manager"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.VerifyAccess(tok, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("unexpected username: %q", claims.Username)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "Employee" {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 15*time.Minute {
		t.Fatalf("expected 15m lifetime, got %v", got)
	}
}

func TestVerifyAccess_RejectsExpired(t *testing.T) {
	m := testManager(t)

	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.IssueAccessToken(now, "alice", []string{"Employee"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// No leeway: one second past expiry must fail, one second before must pass.
	if _, err := m.VerifyAccess(tok, now.Add(15*time.Minute+time.Second)); err == nil {
		t.Fatalf("expected expiry failure")
	}
	if _, err := m.VerifyAccess(tok, now.Add(15*time.Minute-time.Second)); err != nil {
		t.Fatalf("expected valid just before expiry, got %v", err)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	m := testManager(t)
	other, err := NewManager(config.AuthConfig{
		AccessSecret:    "different-access",
		RefreshSecret:   "different-refresh",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	now := time.Now()
	tok, err := m.IssueAccessToken(now, "alice", []string{"Employee"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.VerifyAccess(tok, now); err == nil {
		t.Fatalf("expected wrong-secret failure")
	}
}

func TestVerify_RejectsCrossTypeTokens(t *testing.T) {
	m := testManager(t)
	now := time.Now()

	access, err := m.IssueAccessToken(now, "alice", []string{"Employee"})
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := m.IssueRefreshToken(now, "alice")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	// Distinct secrets mean cross-verification fails at the signature,
	// before the token_type check ever runs.
	if _, err := m.VerifyAccess(refresh, now); err == nil {
		t.Fatalf("expected refresh-as-access failure")
	}
	if _, err := m.VerifyRefresh(access, now); err == nil {
		t.Fatalf("expected access-as-refresh failure")
	}
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	m := testManager(t)
	now := time.Now()

	tok, err := m.IssueRefreshToken(now, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWS, got %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := m.VerifyRefresh(tampered, now); err == nil {
		t.Fatalf("expected tamper failure")
	}
}

func TestIssueRefreshToken_ExcludesRoles(t *testing.T) {
	m := testManager(t)
	now := time.Now()

	tok, err := m.IssueRefreshToken(now, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := m.VerifyRefresh(tok, now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(claims.Roles) != 0 {
		t.Fatalf("refresh claims must not carry roles, got %v", claims.Roles)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Fatalf("unexpected token type %q", claims.TokenType)
	}
}
