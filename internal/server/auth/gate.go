package auth

import (
	"context"

	"github.com/dmitrijs2005/recipex/internal/common"
)

type ctxKey string

const callerKey ctxKey = "caller"

// Gate authenticates a raw token and applies the Authorizer. Both the gRPC
// interceptor and the HTTP middleware go through it.
type Gate struct {
	secret []byte
	authz  Authorizer
}

func NewGate(secret []byte, authz Authorizer) *Gate {
	return &Gate{secret: secret, authz: authz}
}

// Admit returns ctx carrying the caller, or one of common.ErrMissingToken,
// common.ErrInvalidToken, common.ErrTokenExpired, common.ErrForbidden.
func (g *Gate) Admit(ctx context.Context, token string) (context.Context, Caller, error) {
	if token == "" {
		return ctx, Caller{}, common.ErrMissingToken
	}

	caller, err := ParseCaller(token, g.secret)
	if err != nil {
		return ctx, Caller{}, err
	}

	if !g.authz.IsAuthorized(ctx, caller) {
		return ctx, caller, common.ErrForbidden
	}

	return WithCaller(ctx, caller), caller, nil
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	return c, ok
}
