package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ecopontos-backend-go/internal/db"
	"ecopontos-backend-go/internal/identity"
	"ecopontos-backend-go/internal/models"
)

type userService struct {
	users    db.UserRepository
	provider identity.Provider
	events   EventRecorder
	logger   *zap.Logger
}

// NewUserService creates a UserService. Accounts are created at provider and profiles
// stored through users.
func NewUserService(users db.UserRepository, provider identity.Provider, events EventRecorder, logger *zap.Logger) UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{
		users:    users,
		provider: provider,
		events:   eventsOrNop(events),
		logger:   logger.Named("users"),
	}
}

// Register creates the account and then the profile. When the profile cannot be written
// the account is deleted so the email can be registered again.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserOut, error) {
	uid, err := s.provider.CreateUser(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, identity.ErrEmailAlreadyExists) {
			return nil, fmt.Errorf("%w: %s", ErrEmailAlreadyExists, req.Email)
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	profile := &models.UserProfile{Email: req.Email, Name: req.Name, Handle: req.Handle}
	if err := s.users.Create(ctx, uid, profile); err != nil {
		if delErr := s.provider.DeleteUser(context.WithoutCancel(ctx), uid); delErr != nil {
			s.logger.Error("Failed to delete account after profile write failed",
				zap.String("uid", uid), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to store profile for '%s': %w", uid, err)
	}

	s.events.RecordEvent(EventUserRegistered)
	s.logger.Info("User registered", zap.String("uid", uid))
	return &models.UserOut{ID: uid, Email: req.Email, Name: req.Name, Handle: req.Handle}, nil
}

func (s *userService) Me(ctx context.Context, uid, tokenEmail string) (*models.UserOut, error) {
	profile, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return nil, translate(err, ErrUserNotFound, "user with ID '%s'", uid)
	}
	out := &models.UserOut{ID: uid, Email: profile.Email, Name: profile.Name, Handle: profile.Handle}
	if tokenEmail != "" {
		out.Email = tokenEmail
	}
	return out, nil
}
