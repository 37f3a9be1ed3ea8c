// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying go-github client.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"gssoc-leaderbot/internal/domain"
)

// pageSize is the number of items requested per search page, the maximum the
// search endpoint allows.
const pageSize = 100

// FetchError is returned when a request to the GitHub API does not succeed.
// It carries the HTTP status of the failing request (0 when no response was
// received) and the query or resource that was being fetched.
type FetchError struct {
	StatusCode int
	Query      string
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("github request for %q failed with status %d: %v", e.Query, e.StatusCode, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func newFetchError(query string, resp *github.Response, err error) *FetchError {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	return &FetchError{StatusCode: status, Query: query, Err: err}
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	SearchItems(ctx context.Context, query string) ([]domain.Item, error)
	FetchProfile(ctx context.Context, login string) (*domain.Profile, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	client *github.Client
	logger *zap.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token is attached to every outbound request as a bearer credential.
func NewGitHubGateway(token string, logger *zap.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		logger: logger,
	}, nil
}

// SearchItems returns every result of the given search query, in the order the
// API returned them, concatenated across pages.
//
// End of results is detected by page length alone: a page shorter than the
// full page size is the last one. The total_count field is never consulted,
// so a result count that is an exact multiple of the page size costs one
// extra request whose empty response terminates the loop.
func (g *GitHubGateway) SearchItems(ctx context.Context, query string) ([]domain.Item, error) {
	opts := &github.SearchOptions{
		Sort:        "created",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: pageSize, Page: 1},
	}

	var items []domain.Item
	for {
		result, resp, err := g.client.Search.Issues(ctx, query, opts)
		if err != nil {
			return nil, newFetchError(query, resp, err)
		}
		for _, issue := range result.Issues {
			items = append(items, toItem(issue))
		}
		if len(result.Issues) < pageSize {
			break
		}
		opts.Page++
		g.logger.Debug("fetching next search page",
			zap.String("query", query),
			zap.Int("page", opts.Page),
		)
	}
	return items, nil
}

// FetchProfile returns the public profile of the given account.
func (g *GitHubGateway) FetchProfile(ctx context.Context, login string) (*domain.Profile, error) {
	user, resp, err := g.client.Users.Get(ctx, login)
	if err != nil {
		return nil, newFetchError("users/"+login, resp, err)
	}
	return &domain.Profile{
		Login:     user.GetLogin(),
		AvatarURL: user.GetAvatarURL(),
		HTMLURL:   user.GetHTMLURL(),
	}, nil
}

func toItem(issue *github.Issue) domain.Item {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}
	return domain.Item{
		Title:  issue.GetTitle(),
		URL:    issue.GetHTMLURL(),
		Labels: labels,
	}
}
