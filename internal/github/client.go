package github

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

const (
	userAgent         = "relnotes-cli/1.0"
	maxRetries        = 3
	baseBackoffMs     = 1000
	requestTimeoutSec = 30
)

// NewClient creates a GitHub client with OAuth2 authentication and retry
// logic for transient API failures
func NewClient(token string) *github.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	httpClient := &http.Client{
		Timeout: requestTimeoutSec * time.Second,
		Transport: &retryTransport{
			base: &oauth2.Transport{
				Source: ts,
				Base:   http.DefaultTransport,
			},
		},
	}

	client := github.NewClient(httpClient)
	client.UserAgent = userAgent

	return client
}

// retryTransport wraps http.RoundTripper with retry logic for the GitHub API.
// Transient failures (network errors, 5xx) back off exponentially; rate
// limits honor Retry-After; authorization errors are returned immediately.
type retryTransport struct {
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (rt *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := rt.base.RoundTrip(req.Clone(req.Context()))
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				time.Sleep(backoffDelay(attempt))
			}
			continue
		}

		if isRateLimited(resp) {
			if attempt < maxRetries {
				delay := rateLimitDelay(resp)
				resp.Body.Close()
				time.Sleep(delay)
				continue
			}
			return resp, nil
		}

		if resp.StatusCode >= 500 {
			if attempt < maxRetries {
				resp.Body.Close()
				time.Sleep(backoffDelay(attempt))
				continue
			}
		}

		// Success, or an error the caller must see (401/403/404 included)
		return resp, nil
	}

	return nil, fmt.Errorf("GitHub API request failed after %d attempts: %w", maxRetries+1, lastErr)
}

// isRateLimited reports whether the response is a rate-limit rejection
// rather than a plain authorization failure
func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return false
	}
	return resp.Header.Get("Retry-After") != "" || resp.Header.Get("X-RateLimit-Remaining") == "0"
}

// rateLimitDelay calculates how long to wait before retrying a
// rate-limited request
func rateLimitDelay(resp *http.Response) time.Duration {
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	if resetStr := resp.Header.Get("X-RateLimit-Reset"); resetStr != "" {
		if reset, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			if until := time.Until(time.Unix(reset, 0)); until > 0 {
				// Small buffer to avoid racing the reset
				return until + 5*time.Second
			}
		}
	}

	return 60 * time.Second
}

// backoffDelay calculates exponential backoff for the given attempt
func backoffDelay(attempt int) time.Duration {
	backoffMs := baseBackoffMs * int(math.Pow(2, float64(attempt)))
	return time.Duration(backoffMs) * time.Millisecond
}
