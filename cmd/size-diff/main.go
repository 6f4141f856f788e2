package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"pr-toolkit/internal"
	"pr-toolkit/internal/cli"
	"pr-toolkit/internal/config"
	"pr-toolkit/internal/git/github"
	"pr-toolkit/internal/logger"
)

func main() {
	// Parse command-line arguments
	args, err := cli.Parse(cli.BinarySizeDiff)
	if err != nil {
		log.Fatalf("Failed to parse arguments: %v", err)
	}

	// Handle help flag
	if args.ShowHelp {
		cli.ShowUsage(cli.BinarySizeDiff)
		os.Exit(0)
	}

	// Load configuration from environment variables
	cfg, err := config.LoadSizeDiff()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if args.EventPath != "" {
		cfg.EventPath = args.EventPath
	}

	// Setup logging
	logger.Setup(&cfg.Common)

	event, err := github.LoadPullRequestEvent(cfg.EventPath)
	if err != nil {
		log.Fatalf("Failed to load pull request event: %v", err)
	}

	sizeAnalyzer, err := internal.NewSizeAnalyzer(cfg)
	if err != nil {
		log.Fatalf("Failed to create size analyzer: %v", err)
	}

	analysis, err := sizeAnalyzer.Analyze(context.Background(), event, internal.AnalyzeOptions{
		BaseRef: args.BaseRef,
		DryRun:  args.DryRun,
	})
	if err != nil {
		log.Fatalf("Failed to analyze bundle size: %v", err)
	}

	if args.DryRun {
		fmt.Print(analysis.Report)
	}
}
