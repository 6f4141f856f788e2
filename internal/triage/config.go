// Package triage matches issue bodies against label rules.
package triage

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config is the triage rule file stored in the repository
type Config struct {
	Labels         []LabelRule `yaml:"labels"`
	Comment        string      `yaml:"comment,omitempty"`          // Posted whenever any label matches
	NoLabelComment string      `yaml:"no_label_comment,omitempty"` // Posted when no label matches
}

// LabelRule adds Label when some line of the issue body matches Glob.
// With Negate set, the label is added when no line matches.
type LabelRule struct {
	Label   string `yaml:"label"`
	Glob    string `yaml:"glob"`
	Comment string `yaml:"comment,omitempty"`
	Negate  bool   `yaml:"negate,omitempty"`
}

// ParseConfig decodes a rule file. JSON and YAML are both accepted.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse triage config: %w", err)
	}

	for i, rule := range cfg.Labels {
		if rule.Label == "" {
			return nil, fmt.Errorf("labels[%d]: label is required", i)
		}
		if !doublestar.ValidatePattern(rule.Glob) {
			return nil, fmt.Errorf("labels[%d] (%s): invalid glob %q", i, rule.Label, rule.Glob)
		}
	}

	return &cfg, nil
}
