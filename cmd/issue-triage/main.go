package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"pr-toolkit/internal"
	"pr-toolkit/internal/cli"
	"pr-toolkit/internal/config"
	"pr-toolkit/internal/git/github"
	"pr-toolkit/internal/logger"
)

func main() {
	// Parse command-line arguments
	args, err := cli.Parse(cli.BinaryIssueTriage)
	if err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	// Handle help flag
	if args.ShowHelp {
		cli.ShowUsage(cli.BinaryIssueTriage)
		os.Exit(0)
	}

	// Load configuration from environment variables
	cfg, err := config.LoadTriage()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if args.EventPath != "" {
		cfg.EventPath = args.EventPath
	}

	// Setup logging
	logger.Setup(&cfg.Common)

	event, err := github.LoadIssuesEvent(cfg.EventPath)
	if err != nil {
		log.Fatalf("Failed to load issue event: %v", err)
	}

	issueTriager, err := internal.NewIssueTriager(cfg)
	if err != nil {
		log.Fatalf("Failed to create issue triager: %v", err)
	}

	outcome, err := issueTriager.Triage(context.Background(), event, args.DryRun)
	if err != nil {
		log.Fatalf("Failed to triage issue: %v", err)
	}

	if args.DryRun {
		fmt.Printf("Labels: %s\n", strings.Join(outcome.Labels, ", "))
		if outcome.Comment != "" {
			fmt.Printf("Comment:\n%s\n", outcome.Comment)
		}
	}
}
