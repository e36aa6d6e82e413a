package config

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceAccount = `{"type":"service_account","project_id":"demo"}`

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("FIREBASE_DB_URL", "https://demo-default-rtdb.firebaseio.com")
	t.Setenv("FIREBASE_CONFIG_JSON", serviceAccount)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, StoreBackendFirebase, cfg.StoreBackend)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.True(t, cfg.EnableFullDB)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, 15*time.Second, cfg.InitTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("FIREBASE_DB_URL", "https://demo-default-rtdb.firebaseio.com")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/sa.json")
	t.Setenv("PORT", "9090")
	t.Setenv("ENABLE_FULL_DB", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.EnableFullDB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_StartupFailures(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing database url",
			env:  map[string]string{"FIREBASE_CONFIG_JSON": serviceAccount},
			want: "FIREBASE_DB_URL is required",
		},
		{
			name: "missing credentials",
			env:  map[string]string{"FIREBASE_DB_URL": "https://x.firebaseio.com"},
			want: "FIREBASE_CONFIG_JSON",
		},
		{
			name: "malformed credential json",
			env: map[string]string{
				"FIREBASE_DB_URL":      "https://x.firebaseio.com",
				"FIREBASE_CONFIG_JSON": `{"type":`,
			},
			want: "not valid JSON",
		},
		{
			name: "malformed base64 credentials",
			env: map[string]string{
				"FIREBASE_DB_URL":                      "https://x.firebaseio.com",
				"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64": "%%%",
			},
			want: "not a valid base64",
		},
		{
			name: "unknown backend",
			env:  map[string]string{"STORE_BACKEND": "postgres"},
			want: "STORE_BACKEND",
		},
		{
			name: "bad dev token",
			env:  map[string]string{"STORE_BACKEND": "memory", "AUTH_DEV_TOKENS": "no-separator"},
			want: "AUTH_DEV_TOKENS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCredentialsJSON(t *testing.T) {
	cfg := &Config{FirebaseServiceAccountJSONBase64: base64.StdEncoding.EncodeToString([]byte(serviceAccount))}
	got, err := cfg.CredentialsJSON()
	require.NoError(t, err)
	assert.JSONEq(t, serviceAccount, string(got))

	cfg = &Config{FirebaseConfigJSON: serviceAccount, FirebaseServiceAccountJSONBase64: "ignored"}
	got, err = cfg.CredentialsJSON()
	require.NoError(t, err)
	assert.Equal(t, serviceAccount, string(got))

	cfg = &Config{GoogleApplicationCredentials: "/secrets/sa.json"}
	got, err = cfg.CredentialsJSON()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseDevTokens(t *testing.T) {
	tokens, err := ParseDevTokens("t1=uid-1:ana@example.com, t2=uid-2")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, DevToken{Token: "t1", UID: "uid-1", Email: "ana@example.com"}, tokens[0])
	assert.Equal(t, DevToken{Token: "t2", UID: "uid-2"}, tokens[1])

	_, err = ParseDevTokens("t1=:x@example.com")
	assert.Error(t, err)
}
