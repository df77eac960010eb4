package ai

import (
	"context"
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	items := []string{
		"PR: Add dark mode — theme toggle in settings",
		"Commit: Fix crash on startup",
	}

	prompt := BuildPrompt(items)

	if !strings.HasPrefix(prompt, "You are a professional technical writer.") {
		t.Errorf("prompt missing instruction preamble: %q", prompt)
	}
	if !strings.Contains(prompt, "Changes:\n- PR: Add dark mode — theme toggle in settings\n- Commit: Fix crash on startup") {
		t.Errorf("prompt missing bulleted items in order: %q", prompt)
	}
	if strings.HasSuffix(prompt, "\n") {
		t.Errorf("prompt should not end with a trailing newline")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	items := []string{"Commit: one", "Commit: two"}
	if BuildPrompt(items) != BuildPrompt(items) {
		t.Error("prompt is not deterministic for a fixed item list")
	}
}

func TestNoopSummarizer(t *testing.T) {
	noop := NewNoopSummarizer()

	result, err := noop.Summarize(context.Background(), []string{"PR: one", "Commit: two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "- PR: one\n- Commit: two\n"
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		opts        Options
		expectError bool
		expectName  string
	}{
		{
			name:        "openai with key",
			opts:        Options{Provider: "openai", OpenAIKey: "sk-test"},
			expectName:  "openai",
		},
		{
			name:        "openai without key",
			opts:        Options{Provider: "openai"},
			expectError: true,
		},
		{
			name:        "gemini without key",
			opts:        Options{Provider: "gemini"},
			expectError: true,
		},
		{
			name:       "ollama needs no key",
			opts:       Options{Provider: "ollama"},
			expectName: "ollama",
		},
		{
			name:       "none",
			opts:       Options{Provider: "none"},
			expectName: "none",
		},
		{
			name:        "unknown provider",
			opts:        Options{Provider: "cohere"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summarizer, err := New(context.Background(), tt.opts)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if summarizer.Name() != tt.expectName {
				t.Errorf("expected provider %q, got %q", tt.expectName, summarizer.Name())
			}
		})
	}
}

func TestNewOpenAIClient_DefaultModel(t *testing.T) {
	client := NewOpenAIClient("sk-test", "")
	if client.Model != "gpt-4o" {
		t.Errorf("expected default model gpt-4o, got %s", client.Model)
	}

	client = NewOpenAIClient("sk-test", "gpt-4o-mini")
	if client.Model != "gpt-4o-mini" {
		t.Errorf("expected model override, got %s", client.Model)
	}
}

func TestNewOllamaClient_Defaults(t *testing.T) {
	client := NewOllamaClient("", "")
	if client.BaseURL != "http://localhost:11434" {
		t.Errorf("expected default host, got %s", client.BaseURL)
	}
	if client.Model != "gemma3:12b" {
		t.Errorf("expected default model, got %s", client.Model)
	}

	client = NewOllamaClient("http://gpu-box:11434/", "llama3")
	if client.BaseURL != "http://gpu-box:11434" {
		t.Errorf("expected trailing slash stripped, got %s", client.BaseURL)
	}
}
