package gitlab

import (
	"time"

	"gitlab.com/gitlab-org/api/client-go"

	"pr-toolkit/internal/config"
	httputil "pr-toolkit/internal/http"
)

// NewClient creates a GitLab client for the configured merge request target
func NewClient(target config.GitLabTarget, timeoutSeconds int) (*gitlab.Client, error) {
	httpClient := httputil.NewHTTPClient(httputil.HTTPClientOptions{
		Timeout:       time.Duration(timeoutSeconds) * time.Second,
		SkipSSLVerify: target.SkipSSLVerify,
		UserAgent:     httputil.DefaultUserAgent,
	})

	return gitlab.NewClient(target.Token, gitlab.WithBaseURL(target.BaseURL), gitlab.WithHTTPClient(httpClient))
}
