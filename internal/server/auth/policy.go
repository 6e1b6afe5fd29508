package auth

import (
	"context"
	"strings"
)

// Authorizer decides whether an authenticated caller may use the API.
type Authorizer interface {
	IsAuthorized(ctx context.Context, caller Caller) bool
}

// AllowList authorizes callers whose email is on a fixed list.
// Matching is case-insensitive. An empty list authorizes nobody.
type AllowList struct {
	emails map[string]struct{}
}

func NewAllowList(emails []string) *AllowList {
	m := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			m[e] = struct{}{}
		}
	}
	return &AllowList{emails: m}
}

func (a *AllowList) IsAuthorized(_ context.Context, caller Caller) bool {
	_, ok := a.emails[strings.ToLower(caller.Email)]
	return ok
}
