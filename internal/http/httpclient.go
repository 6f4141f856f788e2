package http

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultUserAgent identifies API requests made by the actions
const DefaultUserAgent = "pr-toolkit"

// HTTPClientOptions configures HTTP client creation
type HTTPClientOptions struct {
	// Timeout is the request timeout duration (0 means no timeout)
	Timeout time.Duration
	// SkipSSLVerify disables SSL certificate verification (use with caution)
	SkipSSLVerify bool
	// UserAgent is sent with every request when set
	UserAgent string
}

// NewHTTPClient creates an HTTP client with the specified options
func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	client := &http.Client{
		Timeout: opts.Timeout,
	}

	var transport http.RoundTripper
	if opts.SkipSSLVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	if opts.UserAgent != "" {
		transport = &userAgentTransport{base: transport, userAgent: opts.UserAgent}
	}

	client.Transport = transport
	return client
}

// userAgentTransport sets the User-Agent header on requests that do not carry one
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	if req.Header.Get("User-Agent") != "" {
		return base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return base.RoundTrip(clone)
}
