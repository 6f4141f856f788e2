package internal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	githubapi "github.com/google/go-github/v80/github"

	"pr-toolkit/internal/config"
	"pr-toolkit/internal/git/github"
	"pr-toolkit/internal/triage"
)

// issueTracker reads repository files and updates issues
type issueTracker interface {
	FetchFileContent(ctx context.Context, path, ref string) (string, error)
	AddLabels(ctx context.Context, number int, labels []string) error
	CreateComment(ctx context.Context, number int, body string) error
}

type IssueTriager struct {
	config  *config.TriageConfig
	tracker issueTracker
}

// TriageOutcome records what was (or, in a dry run, would be) applied to an issue
type TriageOutcome struct {
	Labels  []string
	Comment string
}

func NewIssueTriager(cfg *config.TriageConfig) (*IssueTriager, error) {
	restClient, err := github.NewRESTClient(&cfg.Common)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &IssueTriager{
		config:  cfg,
		tracker: github.NewIssueClient(restClient, cfg.Owner(), cfg.Repo()),
	}, nil
}

// Triage loads the rule file at the triggering commit, evaluates it against the issue body
// and applies the matching labels and comments. Nothing is written when dryRun is set.
func (it *IssueTriager) Triage(ctx context.Context, event *githubapi.IssuesEvent, dryRun bool) (*TriageOutcome, error) {
	issue := event.GetIssue()
	number := issue.GetNumber()
	slog.Debug("Issue body content from context", "issue", number, "body", issue.GetBody())

	slog.Info("Loading triage config", "path", it.config.ConfigPath, "ref", it.config.SHA)
	content, err := it.tracker.FetchFileContent(ctx, it.config.ConfigPath, it.config.SHA)
	if err != nil {
		return nil, fmt.Errorf("failed to load triage config: %w", err)
	}

	cfg, err := triage.ParseConfig([]byte(content))
	if err != nil {
		return nil, err
	}

	result := triage.ProcessIssue(cfg, issue.GetBody())
	outcome := &TriageOutcome{}

	switch {
	case len(result.MatchingLabels) > 0:
		outcome.Labels = result.MatchingLabels
		outcome.Comment = strings.Join(result.Comments, "\n\n")
	case cfg.NoLabelComment != "":
		outcome.Comment = cfg.NoLabelComment
	default:
		slog.Info("No label rule matched", "issue", number)
		return outcome, nil
	}

	if dryRun {
		slog.Info("Dry run, not updating the issue", "issue", number)
		return outcome, nil
	}

	if len(outcome.Labels) > 0 {
		slog.Info("Adding labels to issue", "issue", number, "labels", strings.Join(outcome.Labels, ", "))
		if err := it.tracker.AddLabels(ctx, number, outcome.Labels); err != nil {
			return nil, err
		}
	} else {
		slog.Info("Adding comment to issue because no labels match", "issue", number)
	}

	if outcome.Comment != "" {
		if err := it.tracker.CreateComment(ctx, number, outcome.Comment); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}
