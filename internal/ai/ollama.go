package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaHost  = "http://localhost:11434"
	defaultOllamaModel = "gemma3:12b"

	// Local models can be slow to produce long completions
	ollamaTimeout = 120 * time.Second
)

// OllamaClient implements Summarizer against a locally running Ollama
// server, avoiding the need for a cloud-hosted LLM
type OllamaClient struct {
	HTTP    *http.Client
	BaseURL string
	Model   string
}

// NewOllamaClient creates a new Ollama client. Empty host and model select
// the defaults.
func NewOllamaClient(host, model string) *OllamaClient {
	if host == "" {
		host = defaultOllamaHost
	}
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaClient{
		HTTP:    &http.Client{Timeout: ollamaTimeout},
		BaseURL: strings.TrimRight(host, "/"),
		Model:   model,
	}
}

// generateRequest represents the Ollama generate API request format
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse represents the Ollama generate API response format
type generateResponse struct {
	Response string `json:"response"`
}

// Name implements Summarizer
func (c *OllamaClient) Name() string { return "ollama" }

// Summarize generates a release-note summary using the Ollama REST API
func (c *OllamaClient) Summarize(ctx context.Context, items []string) (string, error) {
	logger, ok := ctx.Value("logger").(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}

	logger.Debug("AI summarizing changes", "provider", c.Name(), "model", c.Model, "items", len(items))

	requestBody, err := json.Marshal(generateRequest{
		Model:  c.Model,
		Prompt: BuildPrompt(items),
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.BaseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("Ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Headers:    resp.Header,
		}
	}

	var response generateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	summary := strings.TrimSpace(response.Response)
	if summary == "" {
		return "", fmt.Errorf("Ollama returned an empty response")
	}

	logger.Debug("Ollama request succeeded", "summaryLength", len(summary))
	return summary, nil
}
