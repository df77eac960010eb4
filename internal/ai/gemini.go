package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiClient implements Summarizer using the Google Gemini API
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewGeminiClient creates a new Gemini API client. An empty model selects
// the default.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(model),
		name:   model,
	}, nil
}

// Name implements Summarizer
func (c *GeminiClient) Name() string { return "gemini" }

// Summarize generates a release-note summary using the Gemini API
func (c *GeminiClient) Summarize(ctx context.Context, items []string) (string, error) {
	logger, ok := ctx.Value("logger").(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}

	logger.Debug("AI summarizing changes", "provider", c.Name(), "model", c.name, "items", len(items))

	resp, err := c.model.GenerateContent(ctx, genai.Text(BuildPrompt(items)))
	if err != nil {
		return "", fmt.Errorf("Gemini API request failed: %w", err)
	}

	summary := extractText(resp)
	if summary == "" {
		return "", fmt.Errorf("Gemini API returned an empty response")
	}

	logger.Debug("Gemini API request succeeded", "summaryLength", len(summary))
	return summary, nil
}

// Close releases the underlying API connection
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// extractText concatenates the text parts of the first candidate
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	return strings.TrimSpace(builder.String())
}
