package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// valid log formats, log levels and compression algorithms
var (
	validLogFormats   = []string{"text", "json"}
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validCompressions = []string{"gzip", "brotli", "none"}
)

// truthyInput matches the values GitHub Actions workflows use to switch an input on
var truthyInput = regexp.MustCompile(`^(1|true|yes)$`)

// Common holds settings shared by every action
type Common struct {
	APIURL             string
	EventPath          string
	GraphQLURL         string
	HTTPTimeoutSeconds int
	LogFormat          string
	LogLevel           string
	Repository         string // "owner/repo"
	RepoToken          string
	SHA                string
	Workspace          string
}

// SizeDiffConfig configures the compressed-size report action
type SizeDiffConfig struct {
	Common

	BuildScript            string
	CleanScript            string
	CollapseUnchanged      bool
	CommentKey             string
	Compression            string
	Directory              string
	Exclude                string
	GitLab                 GitLabTarget
	InstallScript          string
	MinimumChangeThreshold int64
	OmitUnchanged          bool
	Pattern                string
	ShowTotal              bool
	StripHashPatterns      []string
	UseCheck               bool
}

// GitLabTarget is an optional GitLab merge request that receives the size report
type GitLabTarget struct {
	BaseURL       string
	MRIID         int64
	Project       string
	SkipSSLVerify bool
	Token         string
}

// Enabled reports whether a GitLab target is configured
func (g GitLabTarget) Enabled() bool {
	return g.Token != ""
}

// TriageConfig configures the issue triage action
type TriageConfig struct {
	Common

	ConfigPath string
}

// LoadSizeDiff creates a SizeDiffConfig from the action inputs and runner environment
func LoadSizeDiff() (*SizeDiffConfig, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	minimumChangeThreshold, err := parseIntInputOrDefault("minimum-change-threshold", 1, 0, 1000000000)
	if err != nil {
		return nil, err
	}

	stripHash, err := parseStripHash(getInput("strip-hash"))
	if err != nil {
		return nil, err
	}

	gitLabSkipSSL, err := parseBoolEnvOrDefault("PRT_GITLAB_SKIP_SSL_VERIFY", false)
	if err != nil {
		return nil, err
	}
	gitLabMRIID, err := parseIntEnvOrDefault("PRT_GITLAB_MR_IID", 0, 0, 1000000000)
	if err != nil {
		return nil, err
	}

	cfg := &SizeDiffConfig{
		Common:                 *common,
		BuildScript:            getInputOrDefault("build-script", "build"),
		CleanScript:            getInput("clean-script"),
		CollapseUnchanged:      parseBoolInputOrDefault("collapse-unchanged", true),
		CommentKey:             getInput("comment-key"),
		Compression:            strings.ToLower(getInputOrDefault("compression", "gzip")),
		Directory:              getInput("directory"),
		Exclude:                getInputOrDefault("exclude", "{**/*.map,**/node_modules/**}"),
		InstallScript:          getInput("install-script"),
		MinimumChangeThreshold: int64(minimumChangeThreshold),
		OmitUnchanged:          parseBoolInputOrDefault("omit-unchanged", false),
		Pattern:                getInputOrDefault("pattern", "**/dist/**/*.js"),
		ShowTotal:              parseBoolInputOrDefault("show-total", true),
		StripHashPatterns:      stripHash,
		UseCheck:               parseBoolInputOrDefault("use-check", false),
		GitLab: GitLabTarget{
			BaseURL:       os.Getenv("PRT_GITLAB_BASE_URL"),
			MRIID:         int64(gitLabMRIID),
			Project:       os.Getenv("PRT_GITLAB_PROJECT"),
			SkipSSLVerify: gitLabSkipSSL,
			Token:         os.Getenv("PRT_GITLAB_TOKEN"),
		},
	}

	if err := validateSizeDiff(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadTriage creates a TriageConfig from the action inputs and runner environment
func LoadTriage() (*TriageConfig, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	cfg := &TriageConfig{
		Common:     *common,
		ConfigPath: getInput("config-path"),
	}

	if cfg.ConfigPath == "" {
		return nil, fmt.Errorf("%s is required", inputEnvName("config-path"))
	}

	return cfg, nil
}

func loadCommon() (*Common, error) {
	timeoutSeconds, err := parseIntEnvOrDefault("PRT_HTTP_TIMEOUT_SECONDS", 30, 1, 3600)
	if err != nil {
		return nil, err
	}

	logLevel := os.Getenv("PRT_LOG_LEVEL")
	// GitHub sets RUNNER_DEBUG when a workflow is re-run with debug logging
	if os.Getenv("RUNNER_DEBUG") == "1" {
		logLevel = "debug"
	}

	cfg := &Common{
		APIURL:             os.Getenv("GITHUB_API_URL"),
		EventPath:          os.Getenv("GITHUB_EVENT_PATH"),
		GraphQLURL:         os.Getenv("GITHUB_GRAPHQL_URL"),
		HTTPTimeoutSeconds: timeoutSeconds,
		LogFormat:          os.Getenv("PRT_LOG_FORMAT"),
		LogLevel:           logLevel,
		Repository:         os.Getenv("GITHUB_REPOSITORY"),
		RepoToken:          getInput("repo-token"),
		SHA:                os.Getenv("GITHUB_SHA"),
		Workspace:          os.Getenv("GITHUB_WORKSPACE"),
	}

	if err := validateCommon(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Owner returns the owner half of GITHUB_REPOSITORY
func (c *Common) Owner() string {
	owner, _, _ := strings.Cut(c.Repository, "/")
	return owner
}

// Repo returns the repository name half of GITHUB_REPOSITORY
func (c *Common) Repo() string {
	_, repo, _ := strings.Cut(c.Repository, "/")
	return repo
}

// inputEnvName returns the environment variable GitHub Actions uses for an input
func inputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// getInput returns the trimmed value of an action input, or "" when unset
func getInput(name string) string {
	return strings.TrimSpace(os.Getenv(inputEnvName(name)))
}

// getInputOrDefault returns the action input or a default if it is empty
func getInputOrDefault(name, defaultVal string) string {
	if val := getInput(name); val != "" {
		return val
	}
	return defaultVal
}

// ToBool converts an action input value to a boolean: only "1", "true" and "yes" are true
func ToBool(v string) bool {
	return truthyInput.MatchString(v)
}

// parseBoolInputOrDefault parses a boolean action input or returns a default value if empty
func parseBoolInputOrDefault(name string, defaultVal bool) bool {
	val := getInput(name)
	if val == "" {
		return defaultVal
	}
	return ToBool(val)
}

// parseIntInputOrDefault parses an integer action input with range validation or returns a default value if empty
func parseIntInputOrDefault(name string, defaultVal, min, max int) (int, error) {
	str := getInput(name)
	if str == "" {
		return defaultVal, nil
	}
	return parseIntInRange(inputEnvName(name), str, min, max)
}

// parseIntEnvOrDefault parses an integer environment variable with range validation or returns a default value if not set
func parseIntEnvOrDefault(key string, defaultVal, min, max int) (int, error) {
	str, ok := os.LookupEnv(key)
	if !ok || str == "" {
		return defaultVal, nil
	}
	return parseIntInRange(key, str, min, max)
}

func parseIntInRange(key, str string, min, max int) (int, error) {
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer, got: %s", key, str)
	}

	if val < min || val > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, val)
	}

	return val, nil
}

// parseBoolEnvOrDefault parses a boolean environment variable or returns a default value if not set
func parseBoolEnvOrDefault(key string, defaultVal bool) (bool, error) {
	str, ok := os.LookupEnv(key)
	if !ok || str == "" {
		return defaultVal, nil
	}

	val, err := strconv.ParseBool(str)
	if err != nil {
		return false, fmt.Errorf("%s must be a valid boolean, got: %s", key, str)
	}

	return val, nil
}

// parseStripHash decodes the strip-hash input, a JSON array of regular expressions
func parseStripHash(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var patterns []string
	if err := json.Unmarshal([]byte(raw), &patterns); err != nil {
		return nil, fmt.Errorf("%s must be a JSON array of strings: %w", inputEnvName("strip-hash"), err)
	}

	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("%s contains an invalid pattern %q: %w", inputEnvName("strip-hash"), p, err)
		}
	}

	return patterns, nil
}

// validateCommon performs validation shared by all actions
func validateCommon(cfg *Common) error {
	if cfg.RepoToken == "" {
		return fmt.Errorf("%s is required", inputEnvName("repo-token"))
	}
	if cfg.Repository != "" && (cfg.Owner() == "" || cfg.Repo() == "") {
		return fmt.Errorf("GITHUB_REPOSITORY must be in the form owner/repo, got: %s", cfg.Repository)
	}

	// Validate logging configuration
	if cfg.LogFormat != "" {
		if !slices.Contains(validLogFormats, strings.ToLower(cfg.LogFormat)) {
			return fmt.Errorf("PRT_LOG_FORMAT must be one of: %v; got: %s", validLogFormats, cfg.LogFormat)
		}
	}
	if cfg.LogLevel != "" {
		if !slices.Contains(validLogLevels, strings.ToLower(cfg.LogLevel)) {
			return fmt.Errorf("PRT_LOG_LEVEL must be one of: %v; got: %s", validLogLevels, cfg.LogLevel)
		}
	}

	return nil
}

// validateSizeDiff performs validation specific to the size report action
func validateSizeDiff(cfg *SizeDiffConfig) error {
	if !slices.Contains(validCompressions, cfg.Compression) {
		return fmt.Errorf("%s must be one of: %v; got: %s", inputEnvName("compression"), validCompressions, cfg.Compression)
	}

	if cfg.GitLab.Enabled() {
		if cfg.GitLab.BaseURL == "" {
			return fmt.Errorf("PRT_GITLAB_BASE_URL environment variable is required when PRT_GITLAB_TOKEN is provided")
		}
		if cfg.GitLab.Project == "" || cfg.GitLab.MRIID == 0 {
			return fmt.Errorf("PRT_GITLAB_PROJECT and PRT_GITLAB_MR_IID are required when PRT_GITLAB_TOKEN is provided")
		}
	}

	return nil
}
