// Package build prepares the base and head builds that the size report compares.
package build

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

var (
	credentialURLRegex = regexp.MustCompile(`https?://[^\s@]+@`)
	secretParamRegex   = regexp.MustCompile(`(?i)(token|secret|password|passwd|bearer)=[^\s]+`)
)

// Runner executes external commands
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	Env []string // Extra environment variables, appended to the process environment
}

// NewExecRunner creates a runner that inherits the current environment
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args in dir and returns its stdout
func (e *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if strings.TrimSpace(dir) != "" {
		cmd.Dir = dir
	}
	if len(e.Env) > 0 {
		cmd.Env = append(cmd.Environ(), e.Env...)
	}

	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errb.String())
		if msg == "" {
			msg = strings.TrimSpace(out.String())
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s %s: %s", name, firstArg(args), redactTokens(msg))
	}

	return out.String(), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// redactTokens removes obvious credential substrings from messages
func redactTokens(s string) string {
	s = credentialURLRegex.ReplaceAllString(s, "https://<redacted>@")
	s = secretParamRegex.ReplaceAllString(s, "$1=<redacted>")
	return s
}
