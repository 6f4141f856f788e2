package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	githubapi "github.com/google/go-github/v80/github"
	"github.com/shurcooL/githubv4"
)

// PublishOutcome describes how a report comment was published
type PublishOutcome string

const (
	OutcomeUpdated PublishOutcome = "updated"
	OutcomeCreated PublishOutcome = "created"
)

// CommentPublisher keeps a single report comment per pull request up to date
type CommentPublisher struct {
	rest    *githubapi.Client
	graphql *githubv4.Client
	owner   string
	repo    string
}

// NewCommentPublisher creates a publisher for owner/repo
func NewCommentPublisher(rest *githubapi.Client, graphql *githubv4.Client, owner, repo string) *CommentPublisher {
	return &CommentPublisher{
		rest:    rest,
		graphql: graphql,
		owner:   owner,
		repo:    repo,
	}
}

// Publish writes body to the pull request. A previous comment containing marker is
// edited in place; otherwise, or when editing fails, a new comment is created.
// An error is returned only when no comment could be written.
func (p *CommentPublisher) Publish(ctx context.Context, prNumber int, body, marker string) (PublishOutcome, error) {
	commentID, err := p.findPreviousComment(ctx, prNumber, marker)
	if err != nil {
		slog.Warn("Failed to look up previous report comment", "pr", prNumber, "error", err)
	}

	if commentID != 0 {
		_, _, err := p.rest.Issues.EditComment(ctx, p.owner, p.repo, commentID, &githubapi.IssueComment{Body: &body})
		if err == nil {
			slog.Info("Updated report comment", "pr", prNumber, "comment_id", commentID)
			return OutcomeUpdated, nil
		}
		slog.Warn("Failed to update previous comment, creating a new one", "comment_id", commentID, "error", err)
	}

	if err := CreateComment(ctx, p.rest, p.owner, p.repo, prNumber, body); err != nil {
		return "", err
	}
	slog.Info("Created report comment", "pr", prNumber)
	return OutcomeCreated, nil
}

// findPreviousComment returns the database ID of the viewer's earlier comment containing
// marker, or 0. GraphQL is tried first, then the REST comment listing.
func (p *CommentPublisher) findPreviousComment(ctx context.Context, prNumber int, marker string) (int64, error) {
	if p.graphql != nil {
		id, err := p.findPreviousCommentGraphQL(ctx, prNumber, marker)
		if err == nil {
			return id, nil
		}
		slog.Debug("GraphQL comment lookup failed, falling back to REST", "error", err)
	}

	return p.findPreviousCommentREST(ctx, prNumber, marker)
}

type prCommentsQuery struct {
	Repository struct {
		PullRequest struct {
			Comments struct {
				Nodes []struct {
					DatabaseID      int64 `graphql:"databaseId"`
					Body            string
					ViewerDidAuthor bool
				}
				PageInfo struct {
					EndCursor   githubv4.String
					HasNextPage bool
				}
			} `graphql:"comments(first: 100, after: $cursor)"`
		} `graphql:"pullRequest(number: $number)"`
	} `graphql:"repository(owner: $owner, name: $repo)"`
}

func (p *CommentPublisher) findPreviousCommentGraphQL(ctx context.Context, prNumber int, marker string) (int64, error) {
	variables := map[string]interface{}{
		"owner":  githubv4.String(p.owner),
		"repo":   githubv4.String(p.repo),
		"number": githubv4.Int(prNumber),
		"cursor": (*githubv4.String)(nil),
	}

	for {
		var query prCommentsQuery
		if err := p.graphql.Query(ctx, &query, variables); err != nil {
			return 0, err
		}

		comments := query.Repository.PullRequest.Comments
		for _, c := range comments.Nodes {
			if c.ViewerDidAuthor && strings.Contains(c.Body, marker) {
				return c.DatabaseID, nil
			}
		}

		if !comments.PageInfo.HasNextPage {
			return 0, nil
		}
		variables["cursor"] = githubv4.NewString(comments.PageInfo.EndCursor)
	}
}

func (p *CommentPublisher) findPreviousCommentREST(ctx context.Context, prNumber int, marker string) (int64, error) {
	comments, err := fetchAllPaginated(ctx,
		func(ctx context.Context, opts *githubapi.ListOptions) ([]*githubapi.IssueComment, *githubapi.Response, error) {
			return p.rest.Issues.ListComments(ctx, p.owner, p.repo, prNumber, &githubapi.IssueListCommentsOptions{ListOptions: *opts})
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to list comments for PR #%d: %w", prNumber, err)
	}

	for _, c := range comments {
		if c.GetUser().GetType() == "Bot" && strings.Contains(c.GetBody(), marker) {
			return c.GetID(), nil
		}
	}
	return 0, nil
}
