package bundle

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// NewHashStripper builds a function that masks content hashes in filenames so that
// builds producing different hashes still compare the same file.
//
// For each pattern, the first match is rewritten: every captured group is replaced by
// asterisks of the same length, and a match without capture groups is removed entirely.
// A nil function is returned when there are no patterns.
func NewHashStripper(patterns []string) (func(string) string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid strip-hash pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	return func(filename string) string {
		result := filename
		for _, re := range compiled {
			result = maskFirstMatch(re, result)
		}
		return result
	}, nil
}

func maskFirstMatch(re *regexp.Regexp, s string) string {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}

	match := s[loc[0]:loc[1]]

	var hashes []string
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			continue // group did not participate
		}
		hashes = append(hashes, s[loc[i]:loc[i+1]])
	}

	replacement := ""
	if len(hashes) > 0 {
		replacement = match
		for _, hash := range hashes {
			replacement = strings.Replace(replacement, hash, strings.Repeat("*", utf8.RuneCountInString(hash)), 1)
		}
	}

	return s[:loc[0]] + replacement + s[loc[1]:]
}
