package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvToken, "")
	t.Setenv("READWISE_BASE_URL", "")
	t.Setenv("READWISE_TIMEOUT_SECONDS", "")
	t.Setenv("READWISE_USER_AGENT", "")
	t.Chdir(t.TempDir())
}

func TestLoad_TokenFromArgs(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "from-env")

	cfg, err := Load([]string{"from-args"})
	require.NoError(t, err)
	require.Equal(t, "from-args", cfg.APIToken)
}

func TestLoad_TokenFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "from-env")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.APIToken)
}

func TestLoad_TokenFromDotEnv(t *testing.T) {
	clearEnv(t)
	err := os.WriteFile(dotenvFile, []byte(EnvToken+"=\"abc123\"\n"), 0o600)
	require.NoError(t, err)

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "abc123", cfg.APIToken, "quotes and trailing newline stripped")
}

func TestLoad_EmptyArgFallsThrough(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "from-env")

	cfg, err := Load([]string{"   "})
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.APIToken)
}

func TestLoad_MissingTokenEverywhere(t *testing.T) {
	clearEnv(t)

	_, err := Load(nil)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestLoad_UnreadableDotEnvIsNotFatal(t *testing.T) {
	clearEnv(t)
	// A directory named .env makes godotenv.Read fail; resolution
	// must fall through to the missing-token path, not crash.
	require.NoError(t, os.Mkdir(dotenvFile, 0o700))

	_, err := Load(nil)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load([]string{"tok"})
	require.NoError(t, err)
	require.Equal(t, "https://readwise.io/api/v2", cfg.APIBaseURL)
	require.Equal(t, 20*time.Second, cfg.Timeout)
	require.Equal(t, "readwise-mcp/0.1", cfg.UserAgent)
	require.Equal(t, "readwise-mcp", cfg.ServerName)
}

func TestLoad_BaseURLOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("READWISE_BASE_URL", "http://localhost:8099/api/v2/")

	cfg, err := Load([]string{"tok"})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8099/api/v2", cfg.APIBaseURL)
}

func TestLoad_BaseURLMissingScheme(t *testing.T) {
	clearEnv(t)
	t.Setenv("READWISE_BASE_URL", "readwise.io/api/v2")

	_, err := Load([]string{"tok"})
	require.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("READWISE_TIMEOUT_SECONDS", "zero")

	_, err := Load([]string{"tok"})
	require.Error(t, err)

	t.Setenv("READWISE_TIMEOUT_SECONDS", "0")
	_, err = Load([]string{"tok"})
	require.Error(t, err)
}
