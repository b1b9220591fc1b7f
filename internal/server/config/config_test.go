package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/config"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
)

const validKey = "supersecretkeysupersecretkey123456"

func minimalValidConfig() *config.Config {
	cfg := &config.Config{
		DB: config.DBConfig{DSN: "postgres://u:p@localhost:5432/db"},
		Auth: config.AuthConfig{
			JWT: config.JWTConfig{SigningKey: validKey},
		},
	}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestExpandEnvStrict_ReplacesExistingEnv(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", validKey)

	out := config.ExpandEnvStrict(`signing_key: "${JWT_SIGNING_KEY}"`)
	require.Equal(t, `signing_key: "`+validKey+`"`, out)
}

func TestExpandEnvStrict_LeavesUnknownEnvAsIs(t *testing.T) {
	in := `signing_key: "${MISSING_ENV_FOR_TEST}"`
	require.Equal(t, in, config.ExpandEnvStrict(in))
}

func TestApplyDefaults_SetsExpectedDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "HS256", cfg.Auth.JWT.Algorithm)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "bcrypt", cfg.Password.Hasher)
	require.Equal(t, 10, cfg.Password.Bcrypt.Cost)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "file://migrations/postgres", cfg.Migrations.Path)
}

func TestValidate_MinimalConfigOK(t *testing.T) {
	require.NoError(t, minimalValidConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"empty host", func(c *config.Config) { c.Server.Host = "" }},
		{"bad port", func(c *config.Config) { c.Server.Port = 70000 }},
		{"tls without files", func(c *config.Config) { c.TLS.Enabled = true }},
		{"empty dsn", func(c *config.Config) { c.DB.DSN = "" }},
		{"unexpanded dsn", func(c *config.Config) { c.DB.DSN = "${DATABASE_DSN}" }},
		{"short key", func(c *config.Config) { c.Auth.JWT.SigningKey = "short-key" }},
		{"unexpanded key", func(c *config.Config) { c.Auth.JWT.SigningKey = "${JWT_SIGNING_KEY}" }},
		{"bad algorithm", func(c *config.Config) { c.Auth.JWT.Algorithm = "RS256" }},
		{"bad hasher", func(c *config.Config) { c.Password.Hasher = "md5" }},
		{"bad bcrypt cost", func(c *config.Config) { c.Password.Bcrypt.Cost = 50 }},
		{"argon2 not configured", func(c *config.Config) { c.Password.Hasher = "argon2id" }},
		{"negative token ttl", func(c *config.Config) { c.Auth.TokenTTL = -time.Minute }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalValidConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate(), serr.ErrExpectedError.Error())
		})
	}
}

func TestValidate_NegativeTokenTTLMessage(t *testing.T) {
	cfg := minimalValidConfig()
	cfg.Auth.TokenTTL = -time.Minute

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "auth.token_ttl не может быть отрицательным")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DSN", "postgres://override")

	cfg := minimalValidConfig()
	cfg.ApplyEnvOverrides()

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "postgres://override", cfg.DB.DSN)
}

func TestLoad_FromFile(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", validKey)
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("SERVER_PORT", "")

	yml := strings.Join([]string{
		"server:",
		"  host: 127.0.0.1",
		"  port: 8081",
		"  read_timeout: 15s",
		"db:",
		"  dsn: postgres://u:p@localhost:5432/students",
		"auth:",
		"  token_ttl: 1h",
		"  jwt:",
		`    signing_key: "${JWT_SIGNING_KEY}"`,
		"password:",
		"  hasher: bcrypt",
		"  bcrypt:",
		"    cost: 12",
	}, "\n")

	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:8081", cfg.Addr())
	require.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, validKey, cfg.Auth.JWT.SigningKey)
	require.Equal(t, 12, cfg.Password.Bcrypt.Cost)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
