package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// tokenKey is the entry name used in the credentials file.
const tokenKey = "JIRA_API_TOKEN"

// env binds the process environment once. Everything the tool reads from
// the environment is declared here so the surface stays visible.
var env = newEnv()

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.BindEnv("jira_api_token", "JIRA_API_TOKEN")
	v.BindEnv("github_token", "GITHUB_TOKEN")
	v.BindEnv("conductor_config", "CONDUCTOR_CONFIG")
	return v
}

// CredentialsPath returns the token file sitting next to the given
// configuration file.
func CredentialsPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "credentials")
}

// LoadToken resolves the Jira API token. The JIRA_API_TOKEN environment
// variable wins; otherwise the credentials file next to configPath is
// read. A missing token fails with ErrIncomplete.
func LoadToken(configPath string) (string, error) {
	if token := env.GetString("jira_api_token"); token != "" {
		return token, nil
	}

	data, err := os.ReadFile(CredentialsPath(configPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: no API token configured", ErrIncomplete)
		}
		return "", fmt.Errorf("failed to read credentials file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		value, ok := strings.CutPrefix(strings.TrimSpace(line), tokenKey+"=")
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return value, nil
		}
	}

	return "", fmt.Errorf("%w: credentials file has no %s entry", ErrIncomplete, tokenKey)
}

// SaveToken writes the API token to the credentials file next to
// configPath, readable only by the owner.
func SaveToken(configPath, token string) error {
	path := CredentialsPath(configPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(tokenKey+"="+token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// GithubToken returns the optional GitHub token used to raise the API rate
// limit during update checks. Empty when unset.
func GithubToken() string {
	return env.GetString("github_token")
}
