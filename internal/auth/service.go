package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"notes-platform/internal/directory"
)

// Directory is the auth-facing slice of the user directory contract.
// Lookups use case-insensitive username equality, matching the uniqueness
// rule the directory enforces on write.
type Directory interface {
	FindByUsername(ctx context.Context, username string) (directory.User, error)
}

// Service orchestrates login, refresh and logout.
//
// All token state lives in the tokens themselves: there is no server-side
// session table, which trades instant revocation for statelessness. A
// session cannot be force-ended before its refresh token expires short of
// rotating the refresh secret for everyone.
//
// The refresh token is not rotated on use: one stable refresh token per
// session until expiry. Rotating designs give stronger replay protection;
// this service intentionally keeps the simpler policy.
type Service struct {
	directory Directory
	tokens    *Manager
	log       *slog.Logger

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(dir Directory, tokens *Manager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		directory: dir,
		tokens:    tokens,
		log:       log,
		clock:     time.Now,
	}
}

// LoginResult carries the freshly issued pair. The refresh token goes into
// the protected cookie only; the access token goes into the response body
// only. Neither is ever logged.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// Login verifies credentials and issues a token pair.
//
// Absent identity, inactive identity and wrong password all collapse into
// ErrUnauthorized so responses cannot be used to probe which usernames
// exist. Every failure path returns immediately; no branch falls through
// to issuance.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		return LoginResult{}, ErrMissingCredentials
	}

	user, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return LoginResult{}, ErrUnauthorized
		}
		s.log.Error("login directory lookup failed", "err", err)
		return LoginResult{}, fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}

	if !user.Active {
		return LoginResult{}, ErrUnauthorized
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrUnauthorized
	}

	now := s.clock()
	access, err := s.tokens.IssueAccessToken(now, user.Username, user.Roles)
	if err != nil {
		s.log.Error("access token issuance failed", "err", err)
		return LoginResult{}, err
	}
	refresh, err := s.tokens.IssueRefreshToken(now, user.Username)
	if err != nil {
		s.log.Error("refresh token issuance failed", "err", err)
		return LoginResult{}, err
	}

	return LoginResult{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a live refresh token for a new access token.
//
// The refresh claims are trusted only for the username; roles are re-read
// from the directory so a role change since login takes effect here. An
// invalid or expired token is ErrForbidden — distinct from the handler's
// "no cookie" 401 so clients can tell "never logged in" from "session
// invalidated".
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken, s.clock())
	if err != nil {
		return "", ErrForbidden
	}

	user, err := s.directory.FindByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return "", ErrUnauthorized
		}
		s.log.Error("refresh directory lookup failed", "err", err)
		return "", fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}

	access, err := s.tokens.IssueAccessToken(s.clock(), user.Username, user.Roles)
	if err != nil {
		s.log.Error("access token issuance failed", "err", err)
		return "", err
	}
	return access, nil
}
