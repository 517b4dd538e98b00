package auth

import "github.com/golang-jwt/jwt/v5"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the only supported JWT claims shape for this service.
//
// Access tokens carry username + roles as of issuance time; a role change
// takes effect on the next issuance, not retroactively. Refresh tokens
// carry the username only: roles are deliberately excluded so a refresh
// cannot escalate privilege without re-reading current roles from the
// directory.
type Claims struct {
	jwt.RegisteredClaims

	Username  string    `json:"username"`
	Roles     []string  `json:"roles,omitempty"`
	TokenType TokenType `json:"token_type"`
}
