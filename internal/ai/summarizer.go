package ai

import (
	"context"
	"fmt"
	"strings"
)

// Summarizer turns an ordered list of change lines into a categorized
// Markdown release note. Implementations wrap one LLM backend; the caller
// guarantees items is non-empty.
type Summarizer interface {
	// Summarize generates a release-note summary for the given change lines
	Summarize(ctx context.Context, items []string) (string, error)

	// Name returns the provider name for logging
	Name() string
}

// Options selects and configures a summarization provider
type Options struct {
	Provider   string // "openai", "gemini", "ollama", or "none"
	Model      string // Provider model name; empty selects the provider default
	OpenAIKey  string
	GeminiKey  string
	OllamaHost string
}

// New creates the summarizer for the configured provider
func New(ctx context.Context, opts Options) (Summarizer, error) {
	switch opts.Provider {
	case "openai":
		if opts.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return NewOpenAIClient(opts.OpenAIKey, opts.Model), nil
	case "gemini", "google":
		if opts.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
		return NewGeminiClient(ctx, opts.GeminiKey, opts.Model)
	case "ollama":
		return NewOllamaClient(opts.OllamaHost, opts.Model), nil
	case "none":
		return NewNoopSummarizer(), nil
	default:
		return nil, fmt.Errorf("unknown summarization provider: %s", opts.Provider)
	}
}

// releasePreamble is the fixed instruction that precedes the change lines.
// Kept stable so the prompt is deterministic in structure for a given
// item list.
const releasePreamble = "You are a professional technical writer. Given these PRs and commits, " +
	"generate a concise, categorized release note in Markdown for end-users. " +
	"Group under Features, Fixes, and Improvements. Prefer the PR description " +
	"if available. Omit trivial/internal changes."

// BuildPrompt assembles the summarization prompt: the fixed preamble
// followed by one bulleted line per item, in the order given
func BuildPrompt(items []string) string {
	var builder strings.Builder
	builder.WriteString(releasePreamble)
	builder.WriteString("\n\nChanges:\n")
	for i, item := range items {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("- ")
		builder.WriteString(item)
	}
	return builder.String()
}

// NoopSummarizer is a fallback that returns the raw change lines without
// any AI processing, so the pipeline can run without credentials
type NoopSummarizer struct{}

// NewNoopSummarizer creates a new no-op summarizer
func NewNoopSummarizer() *NoopSummarizer {
	return &NoopSummarizer{}
}

// Summarize returns the change lines as a plain bulleted list
func (n *NoopSummarizer) Summarize(_ context.Context, items []string) (string, error) {
	var builder strings.Builder
	for _, item := range items {
		builder.WriteString("- ")
		builder.WriteString(strings.TrimSpace(item))
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// Name implements Summarizer
func (n *NoopSummarizer) Name() string { return "none" }
