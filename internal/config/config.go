package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvToken is the environment variable (and .env key) holding the
// Readwise API token.
const EnvToken = "READWISE_API_TOKEN"

// ErrMissingToken is returned by Load when no token is found in the
// command-line arguments, the environment, or a local .env file.
var ErrMissingToken = errors.New("missing Readwise API token")

type Config struct {
	APIToken      string
	APIBaseURL    string
	Timeout       time.Duration
	UserAgent     string
	ServerName    string
	ServerVersion string
}

const (
	defaultBaseURL        = "https://readwise.io/api/v2"
	defaultTimeoutSeconds = 20
	defaultUserAgent      = "readwise-mcp/0.1"

	dotenvFile = ".env"
)

// Load builds the configuration. args are the positional command-line
// arguments; a non-empty args[0] takes precedence over the environment
// and the .env file when resolving the API token.
func Load(args []string) (Config, error) {
	token, err := resolveToken(args)
	if err != nil {
		return Config{}, err
	}

	baseRaw := strings.TrimSpace(os.Getenv("READWISE_BASE_URL"))
	if baseRaw == "" {
		baseRaw = defaultBaseURL
	}
	baseURL, err := url.Parse(baseRaw)
	if err != nil {
		return Config{}, fmt.Errorf("parse READWISE_BASE_URL: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return Config{}, errors.New("READWISE_BASE_URL must include scheme and host")
	}

	timeoutSeconds, err := readIntEnv("READWISE_TIMEOUT_SECONDS", defaultTimeoutSeconds)
	if err != nil {
		return Config{}, err
	}
	if timeoutSeconds <= 0 {
		return Config{}, errors.New("READWISE_TIMEOUT_SECONDS must be > 0")
	}

	userAgent := strings.TrimSpace(os.Getenv("READWISE_USER_AGENT"))
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	cfg := Config{
		APIToken:      token,
		APIBaseURL:    strings.TrimRight(baseURL.String(), "/"),
		Timeout:       time.Duration(timeoutSeconds) * time.Second,
		UserAgent:     userAgent,
		ServerName:    "readwise-mcp",
		ServerVersion: "0.1.0",
	}
	return cfg, nil
}

// resolveToken checks the argument list, then the environment, then a
// .env file in the working directory. First match wins; sources are
// never merged. A missing or unreadable .env file is not an error.
func resolveToken(args []string) (string, error) {
	if len(args) > 0 {
		if token := strings.TrimSpace(args[0]); token != "" {
			return token, nil
		}
	}

	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		return token, nil
	}

	if vars, err := godotenv.Read(dotenvFile); err == nil {
		if token := strings.TrimSpace(vars[EnvToken]); token != "" {
			return token, nil
		}
	}

	return "", fmt.Errorf("%w: pass it as the first argument, set %s, or add it to %s", ErrMissingToken, EnvToken, dotenvFile)
}

func NewHTTPClient(cfg Config) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

func readIntEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}
