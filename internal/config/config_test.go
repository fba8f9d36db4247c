package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const validYAML = `
app:
  port: 9090
  gin_mode: test
database:
  dsn: "host=localhost user=postgres dbname=identity sslmode=disable"
redis:
  addr: "localhost:6379"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
  issuer: "test-identity"
  access_ttl: "15m"
  refresh_ttl: "720h"
otp:
  ttl: "10m"
  length: 6
  max_attempts: 3
  resend_window: "60s"
lockout:
  threshold: 5
  duration: "30m"
password:
  min_length: 8
  history_limit: 5
  bcrypt_cost: 10
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, validYAML))
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "test", cfg.GinMode)
	require.Equal(t, "test-identity", cfg.JWTIssuer)
	require.Equal(t, "15m", cfg.AccessTTL)
	require.Equal(t, 720*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 10*time.Minute, cfg.OTP_TTL)
	require.Equal(t, 6, cfg.OTP_Length)
	require.Equal(t, 3, cfg.OTP_MaxAttempts)
	require.Equal(t, 60*time.Second, cfg.OTP_ResendWindow)
	require.Equal(t, 5, cfg.LockoutThreshold)
	require.Equal(t, 30*time.Minute, cfg.LockoutDuration)
	require.Equal(t, 8, cfg.PasswordMinLength)
	require.Equal(t, 5, cfg.PasswordHistory)
	require.Equal(t, 10, cfg.BcryptCost)
}

func TestLoadFrom_AppliesDefaults(t *testing.T) {
	minimal := `
database:
  dsn: "host=localhost user=postgres dbname=identity"
redis:
  addr: "localhost:6379"
jwt:
  secret: "0123456789abcdef0123456789abcdef"
`
	cfg, err := LoadFrom(writeConfig(t, minimal))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "15m", cfg.AccessTTL)
	require.Equal(t, 720*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 10*time.Minute, cfg.OTP_TTL)
	require.Equal(t, 6, cfg.OTP_Length)
	require.Equal(t, 3, cfg.OTP_MaxAttempts)
	require.Equal(t, 5, cfg.LockoutThreshold)
	require.Equal(t, 30*time.Minute, cfg.LockoutDuration)
	require.Equal(t, 8, cfg.PasswordMinLength)
	require.Equal(t, 5, cfg.PasswordHistory)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not read config file")
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=db.internal user=svc dbname=identity")
	t.Setenv("JWT_SECRET", "ffffffffffffffffffffffffffffffff")

	cfg, err := LoadFrom(writeConfig(t, validYAML))
	require.NoError(t, err)
	require.Equal(t, "host=db.internal user=svc dbname=identity", cfg.DSN)
	require.Equal(t, "ffffffffffffffffffffffffffffffff", cfg.JWTSecret)
}

func TestLoadFrom_RejectsInvalidValues(t *testing.T) {
	base := "database:\n  dsn: \"host=localhost user=postgres dbname=identity\"\nredis:\n  addr: \"localhost:6379\"\n"
	goodSecret := "  secret: \"0123456789abcdef0123456789abcdef\"\n"

	tests := []struct {
		name     string
		contents string
		expected string
	}{
		{
			name:     "short jwt secret",
			contents: base + "jwt:\n  secret: \"tooshort\"\n",
			expected: "jwt secret",
		},
		{
			name:     "malformed access ttl",
			contents: base + "jwt:\n" + goodSecret + "  access_ttl: \"15 minutes\"\n",
			expected: "access TTL",
		},
		{
			name:     "negative lockout threshold",
			contents: base + "jwt:\n" + goodSecret + "lockout:\n  threshold: -1\n",
			expected: "lockout threshold",
		},
		{
			name:     "weak password minimum",
			contents: base + "jwt:\n" + goodSecret + "password:\n  min_length: 4\n",
			expected: "password min length",
		},
		{
			name:     "otp length out of range",
			contents: base + "jwt:\n" + goodSecret + "otp:\n  length: 12\n",
			expected: "otp length",
		},
		{
			name:     "bcrypt cost out of range",
			contents: base + "jwt:\n" + goodSecret + "password:\n  bcrypt_cost: 99\n",
			expected: "bcrypt cost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.contents))
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestValidate_AccessTTLPattern(t *testing.T) {
	valid := []string{"15m", "900s", "1h", "7d", "30m"}
	invalid := []string{"", "15", "m15", "15ms", "1.5h", "15 m", "-15m"}

	for _, v := range valid {
		require.True(t, accessTTLPattern.MatchString(v), "expected %q to be accepted", v)
	}
	for _, v := range invalid {
		require.False(t, accessTTLPattern.MatchString(v), "expected %q to be rejected", v)
	}
}
