package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadToken_Missing(t *testing.T) {
	token, err := LoadToken(filepath.Join(t.TempDir(), "token.json"))

	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestLoadToken_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	err := os.WriteFile(path, []byte(`{"access_token":"abc123"}`), 0600)
	assert.NoError(t, err)

	token, err := LoadToken(path)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestLoadToken_RawString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	err := os.WriteFile(path, []byte("abc123\n"), 0600)
	assert.NoError(t, err)

	token, err := LoadToken(path)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestSaveToken_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")

	tok := &Token{AccessToken: "abc123"}
	assert.NoError(t, tok.Save(path))

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadToken(path)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", loaded)
}
