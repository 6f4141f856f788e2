package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	githubapi "github.com/google/go-github/v80/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"pr-toolkit/internal/config"
	httputil "pr-toolkit/internal/http"
)

const defaultAPIURL = "https://api.github.com"

// NewRESTClient creates a go-github client authenticated with the repo token.
// GITHUB_API_URL is honoured so the actions work on GitHub Enterprise Server.
func NewRESTClient(cfg *config.Common) (*githubapi.Client, error) {
	httpClient := httputil.NewHTTPClient(httputil.HTTPClientOptions{
		Timeout:   time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
		UserAgent: httputil.DefaultUserAgent,
	})

	client := githubapi.NewClient(httpClient).WithAuthToken(cfg.RepoToken)

	if cfg.APIURL == "" || strings.TrimSuffix(cfg.APIURL, "/") == defaultAPIURL {
		return client, nil
	}

	client, err := client.WithEnterpriseURLs(cfg.APIURL, cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure GitHub API URL %s: %w", cfg.APIURL, err)
	}
	return client, nil
}

// NewGraphQLClient creates a GitHub GraphQL client with authentication
func NewGraphQLClient(cfg *config.Common) *githubv4.Client {
	base := httputil.NewHTTPClient(httputil.HTTPClientOptions{
		Timeout:   time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
		UserAgent: httputil.DefaultUserAgent,
	})

	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.RepoToken},
	)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := oauth2.NewClient(ctx, src)

	if cfg.GraphQLURL != "" {
		return githubv4.NewEnterpriseClient(cfg.GraphQLURL, httpClient)
	}
	return githubv4.NewClient(httpClient)
}

// fetchAllPaginated fetches all pages of a paginated GitHub REST API endpoint
func fetchAllPaginated[T any](ctx context.Context, fetcher func(context.Context, *githubapi.ListOptions) ([]T, *githubapi.Response, error)) ([]T, error) {
	var allItems []T
	opts := &githubapi.ListOptions{
		PerPage: 100,
		Page:    1,
	}

	for {
		items, resp, err := fetcher(ctx, opts)
		if err != nil {
			return nil, err
		}

		allItems = append(allItems, items...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allItems, nil
}
