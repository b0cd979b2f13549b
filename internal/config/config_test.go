package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "DATABASE_PATH", "STATIC_DIR", "GITHUB_TOKEN", "GITHUB_GRAPHQL_URL",
		"GITHUB_TOPIC", "GITHUB_CACHE_SECONDS", "VISITOR_SALT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, DefaultGitHubTopic, cfg.GitHubTopic)
	assert.Equal(t, DefaultGitHubEndpoint, cfg.GitHubEndpoint)
	assert.Equal(t, time.Hour, cfg.CacheDuration)
	assert.Len(t, cfg.VisitorSalt, 64)
	assert.Empty(t, cfg.GitHubToken)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("GITHUB_TOPIC", "showcase")
	t.Setenv("GITHUB_CACHE_SECONDS", "60")
	t.Setenv("VISITOR_SALT", "pepper")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "showcase", cfg.GitHubTopic)
	assert.Equal(t, time.Minute, cfg.CacheDuration)
	assert.Equal(t, "pepper", cfg.VisitorSalt)
}

func TestLoadRejectsBadCacheSeconds(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_CACHE_SECONDS", "soon")

	_, err := Load()
	assert.Error(t, err)
}
