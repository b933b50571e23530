package utils

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"

	"github.com/jakechorley/project-prioritization/internal/config"
)

func testToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSaveAndLoadToken_Keyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, SaveToken("test", testToken()))

	path, err := tokenFilePath("test")
	require.NoError(t, err)
	assert.NoFileExists(t, path)

	token, err := LoadToken("test")
	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)
	assert.Equal(t, "refresh", token.RefreshToken)
}

func TestSaveToken_FallsBackToFile(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, SaveToken("test", testToken()))

	path, err := tokenFilePath("test")
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(tokenFilePerms), info.Mode().Perm())

	token, err := LoadToken("test")
	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)
}

func TestLoadToken_MigratesFileToKeyring(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())

	data, err := json.Marshal(testToken())
	require.NoError(t, err)
	require.NoError(t, saveTokenFile("test", data))

	token, err := LoadToken("test")
	require.NoError(t, err)
	assert.Equal(t, "access", token.AccessToken)

	path, err := tokenFilePath("test")
	require.NoError(t, err)
	assert.NoFileExists(t, path)

	stored, err := keyring.Get(keyringService, keyringUser("test"))
	require.NoError(t, err)
	assert.Contains(t, stored, `"access_token":"access"`)
}

func TestLoadToken_NothingStored(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())

	token, err := LoadToken("test")
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestDeleteToken(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, SaveToken("test", testToken()))
	require.NoError(t, DeleteToken("test"))

	token, err := LoadToken("test")
	require.NoError(t, err)
	assert.Nil(t, token)

	// deleting twice is fine
	assert.NoError(t, DeleteToken("test"))
}

func TestKeyringUser_PerEnvironment(t *testing.T) {
	assert.Equal(t, "google-token", keyringUser(""))
	assert.Equal(t, "google-token-prod", keyringUser("prod"))
}

func TestMissingScopesError(t *testing.T) {
	assert.NoError(t, missingScopesError(requiredScopes()))

	err := missingScopesError([]string{ScopeSheets})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ScopeGmailSend)
	assert.NotContains(t, err.Error(), ScopeSheets+" ")
}

func TestGetOAuthConfig(t *testing.T) {
	cfg := &config.OAuthClientConfig{
		Installed: config.OAuthInstalled{
			ClientID:                "client",
			ProjectID:               "project",
			AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
			TokenURI:                "https://oauth2.googleapis.com/token",
			AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientSecret:            "secret",
			RedirectURIs:            []string{"http://localhost"},
		},
	}

	oauthConfig, err := GetOAuthConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "client", oauthConfig.ClientID)
	assert.Equal(t, "http://localhost:3000/oauth/callback", oauthConfig.RedirectURL)
	assert.ElementsMatch(t, requiredScopes(), oauthConfig.Scopes)
}
