package github

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	githubapi "github.com/google/go-github/v80/github"
)

// CheckName is the name of the check run that carries the size report
const CheckName = "Compressed Size"

// CheckDetails completes a check run
type CheckDetails struct {
	Conclusion string // success, failure, neutral, cancelled, skipped, timed_out or action_required
	Title      string
	Summary    string
}

// CompleteCheck finishes a check run created by CreateCheck
type CompleteCheck func(ctx context.Context, details CheckDetails) error

// CreateCheck creates an in-progress check run on headSHA and returns a function that completes it
func CreateCheck(ctx context.Context, client *githubapi.Client, owner, repo, headSHA string) (CompleteCheck, error) {
	check, _, err := client.Checks.CreateCheckRun(ctx, owner, repo, githubapi.CreateCheckRunOptions{
		Name:    CheckName,
		HeadSHA: headSHA,
		Status:  githubapi.Ptr("in_progress"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create check run: %w", err)
	}

	checkID := check.GetID()
	slog.Debug("Created check run", "id", checkID, "head_sha", headSHA)

	return func(ctx context.Context, details CheckDetails) error {
		_, _, err := client.Checks.UpdateCheckRun(ctx, owner, repo, checkID, githubapi.UpdateCheckRunOptions{
			Name:        CheckName,
			Status:      githubapi.Ptr("completed"),
			Conclusion:  githubapi.Ptr(details.Conclusion),
			CompletedAt: &githubapi.Timestamp{Time: time.Now()},
			Output: &githubapi.CheckRunOutput{
				Title:   githubapi.Ptr(details.Title),
				Summary: githubapi.Ptr(details.Summary),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to complete check run %d: %w", checkID, err)
		}
		return nil
	}, nil
}
