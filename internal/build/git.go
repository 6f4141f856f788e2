package build

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Git runs the git operations needed to switch between the head and base builds
type Git struct {
	runner Runner
	dir    string
}

// NewGit creates a Git for the checkout at dir
func NewGit(runner Runner, dir string) *Git {
	return &Git{runner: runner, dir: dir}
}

// FetchBase fetches ref from origin, retrying as a shallow fetch when a full fetch fails
func (g *Git) FetchBase(ctx context.Context, ref string) error {
	_, err := g.run(ctx, "fetch", "-n", "origin", ref)
	if err == nil {
		return nil
	}
	slog.Debug("Full fetch failed, retrying with depth 1", "ref", ref, "error", err)

	if _, err := g.run(ctx, "fetch", "-n", "--depth=1", "origin", ref); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", ref, err)
	}
	return nil
}

// MergeBase returns the best common ancestor of a and b
func (g *Git) MergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := g.run(ctx, "merge-base", a, b)
	if err != nil {
		return "", fmt.Errorf("failed to find merge base of %s and %s: %w", a, b, err)
	}
	return strings.TrimSpace(out), nil
}

// Checkout hard-resets the working tree to ref
func (g *Git) Checkout(ctx context.Context, ref string) error {
	if _, err := g.run(ctx, "reset", "--hard", ref); err != nil {
		return fmt.Errorf("failed to check out %s: %w", ref, err)
	}
	return nil
}

// HeadSHA returns the commit currently checked out
func (g *Git) HeadSHA(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	return g.runner.Run(ctx, g.dir, "git", args...)
}
