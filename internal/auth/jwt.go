package auth

import (
	"errors"
	"time"

	"notes-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager signs and verifies the two token kinds. Access and refresh
// tokens use distinct secrets; a token signed with one never verifies
// under the other. Both secrets are loaded once at startup and never
// written afterwards, so no synchronization is needed.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}

	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		issuer:        cfg.Issuer,
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}, nil
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

/* ===================== ISSUE TOKENS ===================== */

func (m *Manager) IssueAccessToken(now time.Time, username string, roles []string) (string, error) {
	return m.issue(now, TokenTypeAccess, username, roles, m.accessTTL, m.accessSecret)
}

func (m *Manager) IssueRefreshToken(now time.Time, username string) (string, error) {
	// No roles in refresh claims.
	return m.issue(now, TokenTypeRefresh, username, nil, m.refreshTTL, m.refreshSecret)
}

func (m *Manager) issue(
	now time.Time,
	tokenType TokenType,
	username string,
	roles []string,
	ttl time.Duration,
	secret []byte,
) (string, error) {
	if username == "" {
		return "", errors.New("username is required")
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Username:  username,
		Roles:     roles,
		TokenType: tokenType,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

/* ===================== VERIFY TOKEN ===================== */

func (m *Manager) VerifyAccess(tokenString string, now time.Time) (Claims, error) {
	return m.verify(tokenString, TokenTypeAccess, m.accessSecret, now)
}

func (m *Manager) VerifyRefresh(tokenString string, now time.Time) (Claims, error) {
	return m.verify(tokenString, TokenTypeRefresh, m.refreshSecret, now)
}

func (m *Manager) verify(tokenString string, expected TokenType, secret []byte, now time.Time) (Claims, error) {
	var claims Claims

	// No leeway: expiry is exact. now is injected so tests are
	// deterministic; the host clock is the only skew tolerance.
	parseOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if m.issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(m.issuer))
	}

	parser := jwt.NewParser(parseOpts...)
	if _, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return secret, nil
	}); err != nil {
		return Claims{}, err
	}

	if claims.TokenType != expected {
		return Claims{}, errors.New("token_type mismatch")
	}
	if claims.Username == "" {
		return Claims{}, errors.New("username missing")
	}
	if expected == TokenTypeAccess && len(claims.Roles) == 0 {
		return Claims{}, errors.New("roles missing in access token")
	}

	return claims, nil
}
