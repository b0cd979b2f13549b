package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-tiles/internal/tile"
)

const reposFixture = `{
  "data": {
    "viewer": {
      "repositories": {
        "nodes": [
          {
            "name": "mailfuzz",
            "description": "Terminal email client",
            "url": "https://github.com/Zachkp/mailfuzz",
            "createdAt": "2024-03-01T10:00:00Z",
            "updatedAt": "2024-05-01T10:00:00Z",
            "openGraphImageUrl": "",
            "languages": {"nodes": [{"name": "Go"}]},
            "repositoryTopics": {"nodes": [{"topic": {"name": "Portfolio-Showcase"}}, {"topic": {"name": "tui"}}]}
          },
          {
            "name": "dotfiles",
            "description": "config",
            "url": "https://github.com/Zachkp/dotfiles",
            "createdAt": "2023-01-01T00:00:00Z",
            "updatedAt": "2023-01-02T00:00:00Z",
            "languages": {"nodes": [{"name": "Shell"}]},
            "repositoryTopics": {"nodes": []}
          },
          {
            "name": "zach-dev",
            "description": null,
            "url": "https://github.com/Zachkp/zach-dev",
            "createdAt": "2023-06-01T00:00:00Z",
            "updatedAt": "2023-07-01T00:00:00Z",
            "openGraphImageUrl": "https://opengraph.example/zach-dev.png",
            "languages": {"nodes": [{"name": "Go"}, {"name": "HTML"}]},
            "repositoryTopics": {"nodes": [{"topic": {"name": "portfolio-showcase"}}]}
          }
        ]
      }
    }
  }
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := NewClient("secret-token")
	c.Endpoint = srv.URL
	c.HTTP = srv.Client()
	return c
}

func TestFetchProjectsFiltersByTopic(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req graphQLRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "repositoryTopics")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reposFixture))
	})

	projects, err := c.FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	p := projects[0]
	assert.Equal(t, "mailfuzz", p.ID)
	assert.Equal(t, "Terminal email client", p.Description)
	assert.Equal(t, []string{"Go"}, p.Technologies)
	assert.Equal(t, tile.Generate("mailfuzz", nil), p.SVGURL)
	assert.Equal(t, p.SVGURL, p.DisplayImage())
	assert.Equal(t, 2024, p.CreatedAt.Year())

	z := projects[1]
	assert.Equal(t, "zach-dev", z.Name)
	assert.Equal(t, noDescription, z.Description)
	assert.Equal(t, "https://opengraph.example/zach-dev.png", z.DisplayImage())
	assert.Equal(t, []string{"Go", "HTML"}, z.Technologies)
}

func TestFetchProjectsCustomTopic(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(reposFixture))
	})
	c.Topic = "TUI"

	projects, err := c.FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "mailfuzz", projects[0].Name)
}

func TestFetchProjectsWithoutToken(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	c.Token = ""

	projects, err := c.FetchProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.False(t, called)
}

func TestFetchProjectsGraphQLError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Bad credentials"}]}`))
	})

	_, err := c.FetchProjects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad credentials")
}

func TestFetchProjectsHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	})

	_, err := c.FetchProjects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetchProjectsEmptyData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"viewer":null}}`))
	})

	projects, err := c.FetchProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}
