package cli

import (
	"flag"
	"os"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		binary  string
		args    []string
		wantErr bool
		errMsg  string
		check   func(*testing.T, *Args)
	}{
		{
			name:   "help flag should not trigger validation",
			binary: BinarySizeDiff,
			args:   []string{"cmd", "--help", "extra"},
			check: func(t *testing.T, args *Args) {
				if !args.ShowHelp {
					t.Error("ShowHelp should be true")
				}
			},
		},
		{
			name:   "help shorthand",
			binary: BinaryIssueTriage,
			args:   []string{"cmd", "-h"},
			check: func(t *testing.T, args *Args) {
				if !args.ShowHelp {
					t.Error("ShowHelp should be true")
				}
			},
		},
		{
			name:   "no flags",
			binary: BinarySizeDiff,
			args:   []string{"cmd"},
			check: func(t *testing.T, args *Args) {
				if args.DryRun || args.BaseRef != "" || args.EventPath != "" {
					t.Errorf("expected zero Args, got %+v", args)
				}
			},
		},
		{
			name:   "size-diff long flags",
			binary: BinarySizeDiff,
			args:   []string{"cmd", "--dry-run", "--base", "main", "--event", "/tmp/event.json"},
			check: func(t *testing.T, args *Args) {
				if !args.DryRun {
					t.Error("DryRun should be true")
				}
				if args.BaseRef != "main" {
					t.Errorf("BaseRef = %v, expected main", args.BaseRef)
				}
				if args.EventPath != "/tmp/event.json" {
					t.Errorf("EventPath = %v, expected /tmp/event.json", args.EventPath)
				}
			},
		},
		{
			name:   "size-diff shorthand flags are trimmed",
			binary: BinarySizeDiff,
			args:   []string{"cmd", "-n", "-b", " release/1.x ", "-e", " event.json"},
			check: func(t *testing.T, args *Args) {
				if !args.DryRun {
					t.Error("DryRun should be true")
				}
				if args.BaseRef != "release/1.x" {
					t.Errorf("BaseRef = %q, expected release/1.x", args.BaseRef)
				}
				if args.EventPath != "event.json" {
					t.Errorf("EventPath = %q, expected event.json", args.EventPath)
				}
			},
		},
		{
			name:    "issue-triage has no base flag",
			binary:  BinaryIssueTriage,
			args:    []string{"cmd", "--base", "main"},
			wantErr: true,
			errMsg:  "flag provided but not defined: -base",
		},
		{
			name:    "positional arguments should fail",
			binary:  BinaryIssueTriage,
			args:    []string{"cmd", "-n", "leftover"},
			wantErr: true,
			errMsg:  "unexpected arguments: leftover",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset flag.CommandLine for each test
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
			flag.CommandLine.SetOutput(&strings.Builder{})

			// Save and restore os.Args
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()
			os.Args = tt.args

			args, err := Parse(tt.binary)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %q, expected to contain %q", err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestUsage(t *testing.T) {
	sizeDiff := usage(BinarySizeDiff)
	for _, want := range []string{"--base", "--dry-run", "comment-key share one comment", "its own comment-key"} {
		if !strings.Contains(sizeDiff, want) {
			t.Errorf("size-diff usage missing %q", want)
		}
	}

	if triage := usage(BinaryIssueTriage); !strings.Contains(triage, "INPUT_CONFIG-PATH") || strings.Contains(triage, "comment-key") {
		t.Errorf("unexpected issue-triage usage:\n%s", triage)
	}
}
