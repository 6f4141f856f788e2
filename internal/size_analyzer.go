package internal

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	githubapi "github.com/google/go-github/v80/github"
	"golang.org/x/sync/errgroup"

	"pr-toolkit/internal/build"
	"pr-toolkit/internal/bundle"
	"pr-toolkit/internal/config"
	"pr-toolkit/internal/git/github"
	"pr-toolkit/internal/git/gitlab"
	"pr-toolkit/internal/report"
	"pr-toolkit/internal/sizediff"
)

// commentPublisher writes the report comment on a pull request
type commentPublisher interface {
	Publish(ctx context.Context, prNumber int, body, marker string) (github.PublishOutcome, error)
}

type SizeAnalyzer struct {
	config      *config.SizeDiffConfig
	runner      build.Runner
	publisher   commentPublisher
	createCheck func(ctx context.Context, headSHA string) (github.CompleteCheck, error)
	postNote    func(ctx context.Context, body string) error // nil without a GitLab target
}

// SizeAnalysis is the outcome of comparing a pull request build with its base
type SizeAnalysis struct {
	BaseSHA string
	HeadSHA string
	Result  *sizediff.Result
	Report  string
}

// AnalyzeOptions overrides what the pull request event provides
type AnalyzeOptions struct {
	BaseRef string
	DryRun  bool
}

func NewSizeAnalyzer(cfg *config.SizeDiffConfig) (*SizeAnalyzer, error) {
	restClient, err := github.NewRESTClient(&cfg.Common)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	graphqlClient := github.NewGraphQLClient(&cfg.Common)
	owner, repo := cfg.Owner(), cfg.Repo()

	sa := &SizeAnalyzer{
		config:    cfg,
		runner:    build.NewExecRunner(),
		publisher: github.NewCommentPublisher(restClient, graphqlClient, owner, repo),
		createCheck: func(ctx context.Context, headSHA string) (github.CompleteCheck, error) {
			return github.CreateCheck(ctx, restClient, owner, repo, headSHA)
		},
	}

	if cfg.GitLab.Enabled() {
		gitlabClient, err := gitlab.NewClient(cfg.GitLab, cfg.HTTPTimeoutSeconds)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitLab client: %w", err)
		}
		sa.postNote = func(ctx context.Context, body string) error {
			return gitlab.PostMergeRequestNote(ctx, gitlabClient, cfg.GitLab.Project, cfg.GitLab.MRIID, body)
		}
	}

	return sa, nil
}

// Analyze builds and measures the pull request head and its base, renders the size report
// and publishes it unless opts.DryRun is set. The working tree is restored to the commit
// that was checked out on entry. A check run created for the analysis is completed as a
// failure when the analysis returns an error.
func (sa *SizeAnalyzer) Analyze(ctx context.Context, event *githubapi.PullRequestEvent, opts AnalyzeOptions) (_ *SizeAnalysis, err error) {
	pr := event.GetPullRequest()
	prNumber := pr.GetNumber()
	headSHA := pr.GetHead().GetSHA()
	if headSHA == "" {
		headSHA = sa.config.SHA
	}

	baseRef := opts.BaseRef
	if baseRef == "" {
		baseRef = pr.GetBase().GetRef()
	}
	if baseRef == "" {
		return nil, fmt.Errorf("no base ref found for PR #%d", prNumber)
	}

	slog.Info("Starting size analysis", "pr", prNumber, "base_ref", baseRef, "head_sha", headSHA)

	var completeCheck github.CompleteCheck
	if sa.config.UseCheck && !opts.DryRun {
		complete, err := sa.createCheck(ctx, headSHA)
		if err != nil {
			slog.Warn("Failed to create check run", "error", err)
		} else {
			completeCheck = complete
			defer func() {
				if err != nil {
					failCheck(ctx, completeCheck, err)
				}
			}()
		}
	}

	repoDir := sa.config.Workspace
	if repoDir == "" {
		repoDir = "."
	}
	dir := filepath.Join(repoDir, sa.config.Directory)

	measureOpts, err := sa.measureOptions()
	if err != nil {
		return nil, err
	}

	builder := build.NewBuilder(sa.runner, build.BuilderOptions{
		Dir:           dir,
		InstallScript: sa.config.InstallScript,
		BuildScript:   sa.config.BuildScript,
		CleanScript:   sa.config.CleanScript,
	})
	git := build.NewGit(sa.runner, repoDir)

	headSnapshot, err := sa.buildAndMeasure(ctx, builder, dir, measureOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to measure head build: %w", err)
	}
	slog.Info("Measured head build", "files", len(headSnapshot))

	checkedOut, err := git.HeadSHA(ctx)
	if err != nil {
		return nil, err
	}

	if err := git.FetchBase(ctx, baseRef); err != nil {
		return nil, err
	}

	baseSHA, err := git.MergeBase(ctx, "FETCH_HEAD", checkedOut)
	if err != nil {
		baseSHA = pr.GetBase().GetSHA()
		if baseSHA == "" || opts.BaseRef != "" {
			baseSHA = "FETCH_HEAD"
		}
		slog.Warn("Failed to find merge base, comparing against the base ref directly", "base", baseSHA, "error", err)
	}

	if err := git.Checkout(ctx, baseSHA); err != nil {
		return nil, err
	}
	defer func() {
		if err := git.Checkout(ctx, checkedOut); err != nil {
			slog.Error("Failed to restore the previous checkout", "sha", checkedOut, "error", err)
		}
	}()

	baseSnapshot, err := sa.buildAndMeasure(ctx, builder, dir, measureOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to measure base build: %w", err)
	}
	slog.Info("Measured base build", "files", len(baseSnapshot), "base_sha", baseSHA)

	result := sizediff.DiffTable(bundle.Compare(baseSnapshot, headSnapshot), sizediff.Options{
		ShowTotal:              sa.config.ShowTotal,
		CollapseUnchanged:      sa.config.CollapseUnchanged,
		OmitUnchanged:          sa.config.OmitUnchanged,
		MinimumChangeThreshold: sa.config.MinimumChangeThreshold,
	})

	body, err := report.RenderSizeReport(&report.SizeReportData{
		CommentKey:  sa.config.CommentKey,
		Compression: sa.config.Compression,
		BaseRef:     baseRef,
		BaseSHA:     baseSHA,
		HeadSHA:     headSHA,
		Threshold:   sa.config.MinimumChangeThreshold,
		Result:      result,
	})
	if err != nil {
		return nil, err
	}

	analysis := &SizeAnalysis{
		BaseSHA: baseSHA,
		HeadSHA: headSHA,
		Result:  result,
		Report:  body,
	}

	if opts.DryRun {
		slog.Info("Dry run, not publishing the report")
		return analysis, nil
	}

	sa.publish(ctx, prNumber, analysis, completeCheck)
	return analysis, nil
}

func failCheck(ctx context.Context, completeCheck github.CompleteCheck, cause error) {
	err := completeCheck(ctx, github.CheckDetails{
		Conclusion: "failure",
		Title:      "Size analysis failed",
		Summary:    report.Truncate(cause.Error(), report.MaxCheckSummaryLength),
	})
	if err != nil {
		slog.Error("Failed to complete check run", "error", err)
	}
}

func (sa *SizeAnalyzer) measureOptions() (bundle.MeasureOptions, error) {
	stripHash, err := bundle.NewHashStripper(sa.config.StripHashPatterns)
	if err != nil {
		return bundle.MeasureOptions{}, err
	}

	return bundle.MeasureOptions{
		Pattern:     sa.config.Pattern,
		Exclude:     sa.config.Exclude,
		Compression: sa.config.Compression,
		StripHash:   stripHash,
	}, nil
}

func (sa *SizeAnalyzer) buildAndMeasure(ctx context.Context, builder *build.Builder, dir string, opts bundle.MeasureOptions) (bundle.Snapshot, error) {
	if err := builder.InstallAndBuild(ctx); err != nil {
		return nil, err
	}
	return bundle.Measure(ctx, dir, opts)
}

// publish sends the report to every configured target in parallel. Failures are logged, not returned.
func (sa *SizeAnalyzer) publish(ctx context.Context, prNumber int, analysis *SizeAnalysis, completeCheck github.CompleteCheck) {
	var g errgroup.Group

	g.Go(func() error {
		sa.publishToGitHub(ctx, prNumber, analysis, completeCheck)
		return nil
	})

	if sa.postNote != nil {
		g.Go(func() error {
			if err := sa.postNote(ctx, analysis.Report); err != nil {
				slog.Error("Failed to post report to GitLab", "error", err)
			}
			return nil
		})
	}

	g.Wait()
}

func (sa *SizeAnalyzer) publishToGitHub(ctx context.Context, prNumber int, analysis *SizeAnalysis, completeCheck github.CompleteCheck) {
	marker := report.Marker(sa.config.CommentKey)
	outcome, err := sa.publisher.Publish(ctx, prNumber, analysis.Report, marker)
	if err != nil {
		slog.Warn("Failed to publish report comment, falling back to a check run", "pr", prNumber, "error", err)
		if completeCheck == nil {
			completeCheck, err = sa.createCheck(ctx, analysis.HeadSHA)
			if err != nil {
				slog.Error("Unable to publish the size report", "pr", prNumber, "error", err)
				return
			}
		}
	} else {
		slog.Info("Published size report", "pr", prNumber, "outcome", outcome)
	}

	if completeCheck == nil {
		return
	}

	err = completeCheck(ctx, github.CheckDetails{
		Conclusion: report.CheckConclusion(analysis.Result),
		Title:      report.CheckTitle(analysis.Result),
		Summary:    report.Truncate(analysis.Result.Markdown, report.MaxCheckSummaryLength),
	})
	if err != nil {
		slog.Error("Failed to complete check run", "error", err)
	}
}
