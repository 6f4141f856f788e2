package triage

import (
	"log/slog"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

var lineBreakRegex = regexp.MustCompile(`\r?\n|\r`)

// Result lists what should be applied to an issue
type Result struct {
	MatchingLabels []string
	Comments       []string
}

// ProcessIssue evaluates every label rule against the lines of body.
// The config-wide comment, when set, is always the first comment.
func ProcessIssue(cfg *Config, body string) Result {
	result := Result{
		MatchingLabels: []string{},
		Comments:       []string{},
	}
	if cfg.Comment != "" {
		result.Comments = append(result.Comments, cfg.Comment)
	}

	lines := lineBreakRegex.Split(body, -1)

	for _, rule := range cfg.Labels {
		isMatching, err := anyLineMatches(rule.Glob, lines)
		if err != nil {
			slog.Warn("Skipping label rule with invalid glob", "label", rule.Label, "glob", rule.Glob, "error", err)
			continue
		}
		if rule.Negate {
			isMatching = !isMatching
		}

		if !isMatching {
			slog.Debug("No match in body for pattern", "glob", rule.Glob, "negate", rule.Negate)
			continue
		}

		slog.Debug("Match in body for pattern", "glob", rule.Glob, "negate", rule.Negate)
		result.MatchingLabels = append(result.MatchingLabels, rule.Label)
		if rule.Comment != "" {
			result.Comments = append(result.Comments, rule.Comment)
		}
	}

	return result
}

func anyLineMatches(glob string, lines []string) (bool, error) {
	for _, line := range lines {
		matched, err := doublestar.Match(glob, line)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
