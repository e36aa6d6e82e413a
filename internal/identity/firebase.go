package identity

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// Firebase is a Provider backed by Firebase Authentication.
type Firebase struct {
	client *auth.Client
	logger *zap.Logger
}

// NewFirebase wraps an initialized Firebase Auth client.
func NewFirebase(client *auth.Client, logger *zap.Logger) (*Firebase, error) {
	if client == nil {
		return nil, errors.New("firebase identity: auth client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Firebase{client: client, logger: logger}, nil
}

// VerifyToken checks signature, expiry, issuer and revocation of a Firebase ID token.
// The cause of a failure is logged; callers only see ErrInvalidToken.
func (f *Firebase) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	decoded, err := f.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		f.logger.Debug("Firebase ID token rejected", zap.Error(err))
		return nil, ErrInvalidToken
	}
	id := &Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		id.Email = email
	}
	return id, nil
}

// CreateUser registers an email/password account.
func (f *Firebase) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	record, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", fmt.Errorf("%w: %s", ErrEmailAlreadyExists, email)
		}
		return "", fmt.Errorf("firebase identity: create user: %w", err)
	}
	return record.UID, nil
}

// DeleteUser removes the account with the given uid.
func (f *Firebase) DeleteUser(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("firebase identity: delete user '%s': %w", uid, err)
	}
	return nil
}
