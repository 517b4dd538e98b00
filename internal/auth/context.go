package auth

import (
	"context"
	"errors"
)

type ctxKey int

const (
	ctxUsername ctxKey = iota
	ctxRoles
)

// WithIdentity stores the verified caller identity in ctx for downstream
// authorization decisions.
func WithIdentity(ctx context.Context, username string, roles []string) context.Context {
	ctx = context.WithValue(ctx, ctxUsername, username)
	ctx = context.WithValue(ctx, ctxRoles, roles)
	return ctx
}

func Username(ctx context.Context) (string, error) {
	v := ctx.Value(ctxUsername)
	if s, ok := v.(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("username not in context")
}

func Roles(ctx context.Context) ([]string, error) {
	v := ctx.Value(ctxRoles)
	if r, ok := v.([]string); ok {
		return r, nil
	}
	return nil, errors.New("roles not in context")
}

// HasRole reports whether the context identity carries role.
func HasRole(ctx context.Context, role string) bool {
	roles, err := Roles(ctx)
	if err != nil {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
