package auth

import (
	"context"
	"errors"
)

var ErrNotLogged = errors.New("not logged in")

var _ Checker = (*SessionService)(nil)
var _ Checker = (*TestChecker)(nil)

// Checker resolves a session token to the identity it was issued for.
type Checker interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

// TestChecker is an in-memory Checker for handler and middleware tests.
type TestChecker struct {
	Sessions map[string]Identity
}

func NewTestChecker() *TestChecker {
	return &TestChecker{
		Sessions: map[string]Identity{},
	}
}

func (c *TestChecker) Authenticate(_ context.Context, token string) (*Identity, error) {
	identity, ok := c.Sessions[token]
	if !ok {
		return nil, ErrNotLogged
	}
	return &identity, nil
}
