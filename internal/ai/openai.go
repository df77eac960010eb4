package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o"

	temperature = 0.2
	maxTokens   = 500
	maxRetries  = 3
	baseDelay   = 1 * time.Second
)

// OpenAIClient implements Summarizer using the OpenAI chat completions API
type OpenAIClient struct {
	HTTP    *http.Client
	BaseURL string
	Model   string
	APIKey  string
}

// NewOpenAIClient creates a new OpenAI API client. An empty model selects
// the default.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		HTTP:    &http.Client{Timeout: 60 * time.Second},
		BaseURL: defaultOpenAIBaseURL,
		Model:   model,
		APIKey:  apiKey,
	}
}

// chatCompletionRequest represents the OpenAI request format
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse represents the OpenAI response format
type chatCompletionResponse struct {
	Choices []choice `json:"choices"`
}

type choice struct {
	Message message `json:"message"`
}

// Name implements Summarizer
func (c *OpenAIClient) Name() string { return "openai" }

// Summarize generates a release-note summary using the OpenAI API
func (c *OpenAIClient) Summarize(ctx context.Context, items []string) (string, error) {
	logger, ok := ctx.Value("logger").(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}

	logger.Debug("AI summarizing changes", "provider", c.Name(), "model", c.Model, "items", len(items))
	return c.callAPI(ctx, BuildPrompt(items))
}

// callAPI makes the HTTP request to the OpenAI API with retry logic
func (c *OpenAIClient) callAPI(ctx context.Context, prompt string) (string, error) {
	logger, ok := ctx.Value("logger").(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}

	request := chatCompletionRequest{
		Model:       c.Model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Jittered exponential backoff
			delay := time.Duration(float64(baseDelay) * math.Pow(2, float64(attempt-1)))
			jitter := time.Duration(rand.Float64() * float64(delay) * 0.1)
			logger.Debug("OpenAI API retry backoff", "attempt", attempt, "delay", delay+jitter)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay + jitter):
			}
		}

		response, err := c.makeHTTPRequest(ctx, request)
		if err != nil {
			lastErr = err

			// Rate limits honor the Retry-After header and retry
			if httpErr, ok := err.(*HTTPError); ok && httpErr.StatusCode == http.StatusTooManyRequests {
				if retryAfter := httpErr.Headers.Get("Retry-After"); retryAfter != "" {
					if seconds, parseErr := strconv.Atoi(retryAfter); parseErr == nil {
						logger.Debug("OpenAI API rate limited", "retryAfter", seconds)
						select {
						case <-ctx.Done():
							return "", ctx.Err()
						case <-time.After(time.Duration(seconds) * time.Second):
						}
					}
				}
				continue
			}

			return "", fmt.Errorf("OpenAI API request failed: %w", err)
		}

		if len(response.Choices) == 0 {
			return "", fmt.Errorf("OpenAI API returned no choices")
		}

		summary := strings.TrimSpace(response.Choices[0].Message.Content)
		logger.Debug("OpenAI API request succeeded", "attempt", attempt+1, "summaryLength", len(summary))
		return summary, nil
	}

	return "", fmt.Errorf("OpenAI API failed after %d retries: %w", maxRetries, lastErr)
}

// makeHTTPRequest performs the actual HTTP request
func (c *OpenAIClient) makeHTTPRequest(ctx context.Context, request chatCompletionRequest) (*chatCompletionResponse, error) {
	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("User-Agent", "relnotes-cli/1.0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Headers:    resp.Header,
		}
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &response, nil
}

// HTTPError represents an HTTP error response from a provider API
type HTTPError struct {
	StatusCode int
	Body       string
	Headers    http.Header
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}
