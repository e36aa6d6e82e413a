// Package identity verifies bearer tokens and manages accounts at the identity provider.
package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken covers every token verification failure: malformed, expired,
	// revoked, wrong signature or issuer.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrEmailAlreadyExists is returned by CreateUser when the email is taken.
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Identity is the verified caller behind a token.
type Identity struct {
	UID   string
	Email string
}

// Provider is the identity provider the HTTP layer authenticates against.
type Provider interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
	// CreateUser registers an account and returns its uid.
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}
