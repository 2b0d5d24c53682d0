// Package github is a minimal read-only client for the GitHub REST API.
package github

import (
	"fmt"
	"strconv"
	"time"

	"devhub/internal/models"
	"devhub/internal/observability"

	"github.com/gofiber/fiber/v2"
)

const defaultTimeout = 10 * time.Second

// Client issues outbound read-only requests against a GitHub-compatible API.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
}

// NewClient returns a Client for the given API base URL. token may be empty;
// when set it is sent as a bearer credential to raise the rate limit.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		timeout: defaultTimeout,
	}
}

// ListRepos fetches the five most recently created public repositories for
// username and returns the upstream response body verbatim. Any transport
// error or non-success status is reported as an upstream failure; the body is
// never parsed or validated here.
func (c *Client) ListRepos(username string) ([]byte, error) {
	url := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, username)

	agent := fiber.Get(url)
	agent.Timeout(c.timeout)
	agent.UserAgent("devhub-api")
	agent.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		agent.Set("Authorization", "token "+c.token)
	}

	start := time.Now()
	code, body, errs := agent.Bytes()
	observability.UpstreamRequestDuration.
		WithLabelValues("github", strconv.Itoa(code)).
		Observe(time.Since(start).Seconds())

	if len(errs) > 0 {
		return nil, models.NewUpstreamError(errs[0])
	}
	if code < 200 || code >= 300 {
		return nil, models.NewUpstreamError(fmt.Errorf("github responded with status %d", code))
	}
	return body, nil
}
