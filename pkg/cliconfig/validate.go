package cliconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ErrMissingAPIKey is returned when an operation needs the Postman API and
// no key was configured.
var ErrMissingAPIKey = errors.New("postman API key is not configured (set BRUMIGRATE_POSTMAN_API_KEY or postmanApiKey)")

// Validate checks value ranges. It does not require the API key; see
// RequireAPIKey.
func (c *Config) Validate() error {
	if c.Timeout < 0 || c.Timeout > 3600 {
		return fmt.Errorf("timeout %d is out of range (0-3600)", c.Timeout)
	}
	if c.Concurrency < 0 || c.Concurrency > 64 {
		return fmt.Errorf("concurrency %d is out of range (0-64)", c.Concurrency)
	}
	if c.PostmanAPIURL != "" {
		u, err := url.Parse(c.PostmanAPIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("postmanApiUrl %q is not an absolute URL", c.PostmanAPIURL)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logFormat %q must be text or json", c.LogFormat)
	}
	return nil
}

// RequireAPIKey resolves the API key from PostmanAPIKey or APIKeyFile.
func (c *Config) RequireAPIKey() (string, error) {
	if c.PostmanAPIKey != "" {
		return c.PostmanAPIKey, nil
	}
	if c.APIKeyFile != "" {
		key, err := LoadAPIKeyFromPath(c.APIKeyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read API key file: %w", err)
		}
		if key != "" {
			return key, nil
		}
	}
	return "", ErrMissingAPIKey
}

// LoadAPIKeyFromPath loads an API key from a file, trimming whitespace.
// A missing file yields an empty key and no error.
func LoadAPIKeyFromPath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
