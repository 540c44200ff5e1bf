package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Token holds the bearer token for the Echo API
type Token struct {
	AccessToken string `json:"access_token"`
}

// LoadToken loads a cached bearer token from file. The file may either be a
// JSON document with an access_token field or contain the raw token string.
// A missing file is not an error; it yields an empty token and requests go
// out unauthenticated.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("could not read token file: %w", err)
	}

	token := &Token{}
	if err := json.Unmarshal(data, token); err == nil && token.AccessToken != "" {
		return token.AccessToken, nil
	}

	return strings.TrimSpace(string(data)), nil
}

// SaveToken saves a bearer token to file with restrictive permissions
func (t *Token) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("could not save token: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(t)
}
