// Package config reads service settings from the environment. A .env file
// in the working directory is loaded first when present.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/pingcap/errors"
)

type Config struct {
	Port         string
	DatabasePath string
	StaticDir    string

	GitHubToken    string
	GitHubEndpoint string
	GitHubTopic    string
	CacheDuration  time.Duration

	// VisitorSalt is mixed into hashed client IPs. A random salt is
	// generated per process when VISITOR_SALT is unset.
	VisitorSalt string
}

const (
	DefaultPort           = "8080"
	DefaultDatabasePath   = "portfolio.db"
	DefaultGitHubEndpoint = "https://api.github.com/graphql"
	DefaultGitHubTopic    = "portfolio-showcase"
	DefaultCacheSeconds   = 3600
)

// Load builds a Config from environment variables, falling back to the
// development defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", DefaultPort),
		DatabasePath:   getenv("DATABASE_PATH", DefaultDatabasePath),
		StaticDir:      os.Getenv("STATIC_DIR"),
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
		GitHubEndpoint: getenv("GITHUB_GRAPHQL_URL", DefaultGitHubEndpoint),
		GitHubTopic:    getenv("GITHUB_TOPIC", DefaultGitHubTopic),
		VisitorSalt:    os.Getenv("VISITOR_SALT"),
	}

	seconds := DefaultCacheSeconds
	if v := os.Getenv("GITHUB_CACHE_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.Errorf("invalid GITHUB_CACHE_SECONDS %q", v)
		}
		seconds = n
	}
	cfg.CacheDuration = time.Duration(seconds) * time.Second

	if cfg.VisitorSalt == "" {
		salt, err := randomHex(32)
		if err != nil {
			return nil, errors.Annotate(err, "generate visitor salt")
		}
		cfg.VisitorSalt = salt
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
