package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreBackendFirebase = "firebase"
	StoreBackendMemory   = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	Port     string `mapstructure:"PORT"`
	GinMode  string `mapstructure:"GIN_MODE"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Exactly one credential source is used, checked in this order.
	FirebaseConfigJSON               string `mapstructure:"FIREBASE_CONFIG_JSON"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`

	FirebaseDBURL     string `mapstructure:"FIREBASE_DB_URL"`
	FirebaseProjectID string `mapstructure:"FIREBASE_PROJECT_ID"`

	StoreBackend  string `mapstructure:"STORE_BACKEND"`
	AuthDevTokens string `mapstructure:"AUTH_DEV_TOKENS"` // token=uid:email,... (memory backend only)

	CORSAllowedOrigins string  `mapstructure:"CORS_ALLOWED_ORIGINS"`
	EnableFullDB       bool    `mapstructure:"ENABLE_FULL_DB"`
	RateLimitRPS       float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst     int     `mapstructure:"RATE_LIMIT_BURST"`

	InitTimeout     time.Duration `mapstructure:"INIT_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var envKeys = []string{
	"PORT",
	"GIN_MODE",
	"LOG_LEVEL",
	"FIREBASE_CONFIG_JSON",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_DB_URL",
	"FIREBASE_PROJECT_ID",
	"STORE_BACKEND",
	"AUTH_DEV_TOKENS",
	"CORS_ALLOWED_ORIGINS",
	"ENABLE_FULL_DB",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
	"INIT_TIMEOUT",
	"SHUTDOWN_TIMEOUT",
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", StoreBackendFirebase)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("ENABLE_FULL_DB", true)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("INIT_TIMEOUT", "15s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable for the selected store backend.
func (c *Config) Validate() error {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case StoreBackendFirebase:
		if c.FirebaseDBURL == "" {
			return errors.New("FIREBASE_DB_URL is required")
		}
		if c.FirebaseConfigJSON == "" && c.FirebaseServiceAccountJSONBase64 == "" && c.GoogleApplicationCredentials == "" {
			return errors.New("one of FIREBASE_CONFIG_JSON, FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 or GOOGLE_APPLICATION_CREDENTIALS is required")
		}
		if c.FirebaseConfigJSON != "" && !json.Valid([]byte(c.FirebaseConfigJSON)) {
			return errors.New("FIREBASE_CONFIG_JSON is not valid JSON")
		}
		if c.FirebaseConfigJSON == "" && c.FirebaseServiceAccountJSONBase64 != "" {
			if _, err := base64.StdEncoding.DecodeString(c.FirebaseServiceAccountJSONBase64); err != nil {
				return errors.New("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is not a valid base64 string")
			}
		}
	case StoreBackendMemory:
		if _, err := ParseDevTokens(c.AuthDevTokens); err != nil {
			return err
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreBackendFirebase, StoreBackendMemory, c.StoreBackend)
	}

	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.RateLimitRPS < 0 {
		return errors.New("RATE_LIMIT_RPS cannot be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return errors.New("RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled")
	}
	return nil
}

// CredentialsJSON returns the service account JSON from FIREBASE_CONFIG_JSON or its base64
// variant. It returns nil when credentials come from a file path.
func (c *Config) CredentialsJSON() ([]byte, error) {
	if c.FirebaseConfigJSON != "" {
		return []byte(c.FirebaseConfigJSON), nil
	}
	if c.FirebaseServiceAccountJSONBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		return decoded, nil
	}
	return nil, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS into its entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// DevToken is one entry of AUTH_DEV_TOKENS.
type DevToken struct {
	Token string
	UID   string
	Email string
}

// ParseDevTokens parses "token=uid:email" pairs separated by commas.
func ParseDevTokens(raw string) ([]DevToken, error) {
	var tokens []DevToken
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		token, identity, ok := strings.Cut(entry, "=")
		if !ok || token == "" {
			return nil, fmt.Errorf("AUTH_DEV_TOKENS entry %q must look like token=uid:email", entry)
		}
		uid, email, _ := strings.Cut(identity, ":")
		if uid == "" {
			return nil, fmt.Errorf("AUTH_DEV_TOKENS entry %q has an empty uid", entry)
		}
		tokens = append(tokens, DevToken{Token: token, UID: uid, Email: email})
	}
	return tokens, nil
}
