package utils

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/rhallewell/wardroster/internal/config"
)

const (
	tokenDirName   = ".wardroster/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
)

// OAuth scopes for Google APIs
const (
	ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"
)

// GetOAuthConfig creates an oauth2 config from the OAuth client
// configuration with the requested scopes.
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig, scopes []string) (*oauth2.Config, error) {
	raw, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	conf, err := google.ConfigFromJSON(raw, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	return conf, nil
}

// GetTokenWithFlow returns a cached token if one exists, otherwise runs the
// out-of-band authorization flow: it prints the consent URL, reads the
// authorization code from stdin, exchanges it, and caches the result.
func GetTokenWithFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	if token, err := loadToken(); err == nil && token.Valid() {
		return token, nil
	} else if err == nil && token.RefreshToken != "" {
		refreshed, err := conf.TokenSource(ctx, token).Token()
		if err == nil {
			saveToken(refreshed)
			return refreshed, nil
		}
	}

	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL in your browser and paste the authorization code:\n%s\n> ", authURL)

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	token, err := conf.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := saveToken(token); err != nil {
		return nil, fmt.Errorf("failed to save token: %w", err)
	}

	return token, nil
}

func tokenPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, tokenDirName, "token.json"), nil
}

func loadToken() (*oauth2.Token, error) {
	path, err := tokenPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse cached token: %w", err)
	}
	return &token, nil
}

func saveToken(token *oauth2.Token) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	return os.WriteFile(path, data, tokenFilePerms)
}
