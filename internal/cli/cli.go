package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Binaries built from this module
const (
	BinarySizeDiff    = "size-diff"
	BinaryIssueTriage = "issue-triage"
)

// Args holds the parsed command-line arguments
type Args struct {
	BaseRef   string
	DryRun    bool
	EventPath string
	ShowHelp  bool
}

// Parse parses command-line arguments for binary
func Parse(binary string) (*Args, error) {
	args := &Args{}

	// Define flags with both long and short forms
	flag.BoolVar(&args.DryRun, "dry-run", false, "Print the result to stdout instead of publishing it")
	flag.BoolVar(&args.DryRun, "n", false, "Dry run (shorthand)")

	flag.StringVar(&args.EventPath, "event", "", "Path to the webhook event payload (overrides GITHUB_EVENT_PATH)")
	flag.StringVar(&args.EventPath, "e", "", "Event payload path (shorthand)")

	if binary == BinarySizeDiff {
		flag.StringVar(&args.BaseRef, "base", "", "Base ref to compare against (overrides the pull request base)")
		flag.StringVar(&args.BaseRef, "b", "", "Base ref (shorthand)")
	}

	flag.BoolVar(&args.ShowHelp, "help", false, "Show help message")
	flag.BoolVar(&args.ShowHelp, "h", false, "Show help message (shorthand)")

	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, err
	}

	// Check for help flag early - no need to validate if user just wants help
	if args.ShowHelp {
		return args, nil
	}

	args.BaseRef = strings.TrimSpace(args.BaseRef)
	args.EventPath = strings.TrimSpace(args.EventPath)

	if rest := flag.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s\n\nRun '%s --help' for more information", strings.Join(rest, " "), binary)
	}

	return args, nil
}

// ShowUsage displays usage information for binary
func ShowUsage(binary string) {
	fmt.Println(usage(binary))
}

func usage(binary string) string {
	switch binary {
	case BinaryIssueTriage:
		return `issue-triage - label and comment on new issues based on their body

USAGE:
  issue-triage [flags]

FLAGS:
  -e, --event <path>                 Webhook event payload (default: $GITHUB_EVENT_PATH)
  -n, --dry-run                      Print labels and comments instead of applying them
  -h, --help                         Show this help message

CONFIGURATION:
  INPUT_REPO-TOKEN                   Token used for the GitHub API (required)
  INPUT_CONFIG-PATH                  Path of the JSON or YAML rule file in the repository (required)
  PRT_LOG_FORMAT, PRT_LOG_LEVEL      Logging (text|json, debug|info|warn|error)`
	default:
		return `size-diff - report compressed size changes of build artifacts on pull requests

USAGE:
  size-diff [flags]

FLAGS:
  -b, --base <ref>                   Base ref to compare against (default: pull request base)
  -e, --event <path>                 Webhook event payload (default: $GITHUB_EVENT_PATH)
  -n, --dry-run                      Print the report instead of publishing it
  -h, --help                         Show this help message

EXAMPLES:
  # Inside a GitHub Actions workflow
  size-diff

  # Preview the report locally against main
  size-diff -n -b main -e event.json > report.md

CONFIGURATION:
  Action inputs are read from INPUT_* environment variables:
  repo-token, directory, pattern, exclude, compression, strip-hash,
  minimum-change-threshold, show-total, omit-unchanged, collapse-unchanged,
  build-script, clean-script, install-script, use-check, comment-key.
  A GitLab merge request also receives the report when PRT_GITLAB_TOKEN is set.

  The report comment is found again by a hidden marker. Runs without a
  comment-key share one comment and overwrite each other's report; give every
  workflow or job that reports on the same pull request its own comment-key.`
	}
}
