package github

import (
	"encoding/json"
	"fmt"
	"os"

	githubapi "github.com/google/go-github/v80/github"
)

// LoadPullRequestEvent decodes the pull_request webhook payload the runner stores at path
func LoadPullRequestEvent(path string) (*githubapi.PullRequestEvent, error) {
	var event githubapi.PullRequestEvent
	if err := loadEvent(path, &event); err != nil {
		return nil, err
	}
	if event.PullRequest == nil {
		return nil, fmt.Errorf("no pull request context found in %s; this action can only run on pull_request events", path)
	}
	return &event, nil
}

// LoadIssuesEvent decodes the issues webhook payload the runner stores at path
func LoadIssuesEvent(path string) (*githubapi.IssuesEvent, error) {
	var event githubapi.IssuesEvent
	if err := loadEvent(path, &event); err != nil {
		return nil, err
	}
	if event.Issue == nil {
		return nil, fmt.Errorf("no issue context found in %s; this action can only run on issue creation", path)
	}
	return &event, nil
}

func loadEvent(path string, v any) error {
	if path == "" {
		return fmt.Errorf("GITHUB_EVENT_PATH is not set")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read event payload: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse event payload %s: %w", path, err)
	}
	return nil
}
