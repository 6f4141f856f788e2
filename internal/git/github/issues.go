package github

import (
	"context"
	"fmt"

	githubapi "github.com/google/go-github/v80/github"
)

// CreateComment posts a comment on an issue or pull request
func CreateComment(ctx context.Context, client *githubapi.Client, owner, repo string, number int, body string) error {
	_, _, err := client.Issues.CreateComment(ctx, owner, repo, number, &githubapi.IssueComment{Body: &body})
	if err != nil {
		return fmt.Errorf("failed to comment on #%d: %w", number, err)
	}
	return nil
}

// AddLabels adds labels to an issue or pull request
func AddLabels(ctx context.Context, client *githubapi.Client, owner, repo string, number int, labels []string) error {
	_, _, err := client.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels to #%d: %w", number, err)
	}
	return nil
}

// FetchFileContent fetches the decoded content of a file at ref
func FetchFileContent(ctx context.Context, client *githubapi.Client, owner, repo, path, ref string) (string, error) {
	opts := &githubapi.RepositoryContentGetOptions{Ref: ref}
	file, _, _, err := client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s at %s: %w", path, ref, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s is a directory, expected a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return content, nil
}

// IssueClient performs issue operations on a single repository
type IssueClient struct {
	client *githubapi.Client
	owner  string
	repo   string
}

// NewIssueClient creates an IssueClient for owner/repo
func NewIssueClient(client *githubapi.Client, owner, repo string) *IssueClient {
	return &IssueClient{client: client, owner: owner, repo: repo}
}

// FetchFileContent fetches a file of the repository at ref
func (c *IssueClient) FetchFileContent(ctx context.Context, path, ref string) (string, error) {
	return FetchFileContent(ctx, c.client, c.owner, c.repo, path, ref)
}

// AddLabels adds labels to issue number
func (c *IssueClient) AddLabels(ctx context.Context, number int, labels []string) error {
	return AddLabels(ctx, c.client, c.owner, c.repo, number, labels)
}

// CreateComment comments on issue number
func (c *IssueClient) CreateComment(ctx context.Context, number int, body string) error {
	return CreateComment(ctx, c.client, c.owner, c.repo, number, body)
}
