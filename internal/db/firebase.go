package db

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	rtdb "firebase.google.com/go/v4/db"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"ecopontos-backend-go/internal/config"
)

// Platform holds the Firebase clients. It is built once at startup by InitFirebase and
// handed to the components that need it; there is no package-level client state.
type Platform struct {
	App      *firebase.App
	Database *rtdb.Client
	Auth     *auth.Client
}

// InitFirebase initializes the Firebase Admin SDK with the Realtime Database URL and
// the credentials from appConfig, and creates the database and auth clients.
func InitFirebase(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*Platform, error) {
	if appConfig == nil {
		return nil, errors.New("InitFirebase: appConfig cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	credsOption, err := credentialsOption(appConfig, logger)
	if err != nil {
		return nil, err
	}

	fbConfig := &firebase.Config{
		DatabaseURL: appConfig.FirebaseDBURL,
		ProjectID:   appConfig.FirebaseProjectID,
	}

	app, err := firebase.NewApp(ctx, fbConfig, credsOption)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	database, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Database: %w", err)
	}
	logger.Info("Realtime Database client initialized", zap.String("databaseURL", appConfig.FirebaseDBURL))

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Auth: %w", err)
	}
	logger.Info("Firebase Auth client initialized")

	return &Platform{App: app, Database: database, Auth: authClient}, nil
}

func credentialsOption(appConfig *config.Config, logger *zap.Logger) (option.ClientOption, error) {
	credsJSON, err := appConfig.CredentialsJSON()
	if err != nil {
		return nil, err
	}
	if credsJSON != nil {
		logger.Info("Initializing Firebase with service account JSON from the environment")
		return option.WithCredentialsJSON(credsJSON), nil
	}

	path := appConfig.GoogleApplicationCredentials
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("credentials file %q: %w", path, err)
	}
	logger.Info("Initializing Firebase with credentials file", zap.String("path", path))
	return option.WithCredentialsFile(path), nil
}
