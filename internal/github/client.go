// Package github lists the repositories shown as portfolio projects. Only
// repositories tagged with the portfolio topic are kept, and each one gets a
// generated tile for display when it has no social preview image.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pingcap/errors"

	"github.com/Zachkp/portfolio-tiles/internal/tile"
)

const (
	DefaultEndpoint = "https://api.github.com/graphql"
	DefaultTopic    = "portfolio-showcase"

	noDescription = "No description provided"
)

// Project is a repository as presented on the portfolio.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Technologies []string  `json:"technologies"`
	SVGURL       string    `json:"svgUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DisplayImage is the preview image if the repository has one, the
// generated tile otherwise.
func (p Project) DisplayImage() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return p.SVGURL
}

const repositoriesQuery = `
query {
  viewer {
    repositories(
      first: 100
      orderBy: { field: CREATED_AT, direction: DESC }
      affiliations: [OWNER, COLLABORATOR]
    ) {
      nodes {
        name
        description
        url
        createdAt
        updatedAt
        openGraphImageUrl
        languages(first: 10) { nodes { name } }
        repositoryTopics(first: 20) { nodes { topic { name } } }
      }
    }
  }
}`

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type repositoryNode struct {
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	URL               string    `json:"url"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	OpenGraphImageURL string    `json:"openGraphImageUrl"`
	Languages         struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"languages"`
	RepositoryTopics struct {
		Nodes []struct {
			Topic struct {
				Name string `json:"name"`
			} `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`
}

type repositoriesResponse struct {
	Data *struct {
		Viewer *struct {
			Repositories *struct {
				Nodes []repositoryNode `json:"nodes"`
			} `json:"repositories"`
		} `json:"viewer"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Client queries the GitHub GraphQL API as the token's owner.
type Client struct {
	Token    string
	Endpoint string
	Topic    string
	HTTP     *http.Client
	Logger   *slog.Logger
}

func NewClient(token string) *Client {
	return &Client{
		Token:    token,
		Endpoint: DefaultEndpoint,
		Topic:    DefaultTopic,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		Logger:   slog.Default(),
	}
}

// FetchProjects returns the viewer's repositories carrying the portfolio
// topic, newest first. Without a token it logs a warning and returns no
// projects.
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	log := c.logger()
	if c.Token == "" {
		log.Warn("no GITHUB_TOKEN configured, skipping sync")
		return nil, nil
	}

	body, err := json.Marshal(graphQLRequest{Query: repositoriesQuery})
	if err != nil {
		return nil, errors.Trace(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Trace(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Annotate(err, "query github")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("github returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var out repositoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Annotate(err, "decode github response")
	}
	if len(out.Errors) > 0 {
		msgs := make([]string, len(out.Errors))
		for i, e := range out.Errors {
			msgs[i] = e.Message
		}
		return nil, errors.Errorf("github graphql: %s", strings.Join(msgs, "; "))
	}
	if out.Data == nil || out.Data.Viewer == nil || out.Data.Viewer.Repositories == nil {
		log.Warn("no repositories found")
		return nil, nil
	}

	projects := filterProjects(out.Data.Viewer.Repositories.Nodes, c.topic())
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	log.Info("synced projects", "count", len(projects), "names", strings.Join(names, ", "))
	return projects, nil
}

func filterProjects(nodes []repositoryNode, topic string) []Project {
	topic = strings.ToLower(topic)
	projects := make([]Project, 0, len(nodes))
	for _, n := range nodes {
		if !hasTopic(n, topic) {
			continue
		}
		techs := make([]string, 0, len(n.Languages.Nodes))
		for _, l := range n.Languages.Nodes {
			techs = append(techs, l.Name)
		}
		desc := noDescription
		if n.Description != nil && *n.Description != "" {
			desc = *n.Description
		}
		projects = append(projects, Project{
			ID:           n.Name,
			Name:         n.Name,
			Description:  desc,
			URL:          n.URL,
			ImageURL:     n.OpenGraphImageURL,
			Technologies: techs,
			SVGURL:       tile.Generate(n.Name, techs),
			CreatedAt:    n.CreatedAt,
			UpdatedAt:    n.UpdatedAt,
		})
	}
	return projects
}

func hasTopic(n repositoryNode, topic string) bool {
	for _, t := range n.RepositoryTopics.Nodes {
		if strings.ToLower(t.Topic.Name) == topic {
			return true
		}
	}
	return false
}

func (c *Client) endpoint() string {
	if c.Endpoint == "" {
		return DefaultEndpoint
	}
	return c.Endpoint
}

func (c *Client) topic() string {
	if c.Topic == "" {
		return DefaultTopic
	}
	return c.Topic
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default().With("component", "github")
	}
	return c.Logger.With("component", "github")
}
