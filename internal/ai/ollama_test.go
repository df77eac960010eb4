package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaClient_Summarize(t *testing.T) {
	var gotRequest generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse{Response: "## Fixes\n- Crash fixed\n"})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "gemma3:12b")
	client.HTTP = server.Client()

	summary, err := client.Summarize(context.Background(), []string{"Commit: Fix crash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary != "## Fixes\n- Crash fixed" {
		t.Errorf("unexpected summary: %q", summary)
	}
	if gotRequest.Model != "gemma3:12b" {
		t.Errorf("expected model gemma3:12b, got %s", gotRequest.Model)
	}
	if gotRequest.Stream {
		t.Error("expected stream to be disabled")
	}
	if !strings.Contains(gotRequest.Prompt, "- Commit: Fix crash") {
		t.Errorf("prompt missing change line: %q", gotRequest.Prompt)
	}
}

func TestOllamaClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "missing-model")
	client.HTTP = server.Client()

	_, err := client.Summarize(context.Background(), []string{"Commit: anything"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestOllamaClient_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse{Response: "   "})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "gemma3:12b")
	client.HTTP = server.Client()

	_, err := client.Summarize(context.Background(), []string{"Commit: anything"})
	if err == nil {
		t.Fatal("expected an error for an empty response")
	}
}
