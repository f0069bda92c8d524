package auth

import (
	"context"
	"errors"
)

type Role int

const (
	RoleAdmin Role = iota
	RoleUser
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidToken     = errors.New("invalid token")
)

type Principal interface {
	Name() string
}

type Authentication interface {
	Principal() Principal
	Roles() []Role
}

type authCtxKey struct{}

func AddAuthToContext(ctx context.Context, a Authentication) context.Context {
	return context.WithValue(ctx, authCtxKey{}, a)
}

func FromContext(ctx context.Context) Authentication {
	if a, ok := ctx.Value(authCtxKey{}).(Authentication); ok {
		return a
	}
	return nil
}

func HasRole(a Authentication, role Role) bool {
	if a == nil {
		return false
	}
	for _, r := range a.Roles() {
		if r == role {
			return true
		}
	}
	return false
}
