package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	githubapi "github.com/google/go-github/v66/github"

	"github.com/relnotes/relnotes-cli/internal/ai"
	"github.com/relnotes/relnotes-cli/internal/config"
	"github.com/relnotes/relnotes-cli/internal/output"
)

// newGitHubStub serves a repository with one merged PR (subsuming one
// commit) and two commits, one of which is the PR's
func newGitHubStub(t *testing.T) *httptest.Server {
	t.Helper()

	merged := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/repos/acme/widgets/pulls":
			json.NewEncoder(w).Encode([]githubapi.PullRequest{
				{
					Number:    githubapi.Int(7),
					Title:     githubapi.String("Add dark mode"),
					Body:      githubapi.String("Theme toggle in settings"),
					User:      &githubapi.User{Login: githubapi.String("octocat")},
					MergedAt:  &githubapi.Timestamp{Time: merged},
					UpdatedAt: &githubapi.Timestamp{Time: merged},
				},
			})
		case "/repos/acme/widgets/pulls/7/commits":
			json.NewEncoder(w).Encode([]githubapi.RepositoryCommit{
				{SHA: githubapi.String("sha-in-pr")},
			})
		case "/repos/acme/widgets/commits":
			json.NewEncoder(w).Encode([]githubapi.RepositoryCommit{
				{
					SHA:    githubapi.String("sha-in-pr"),
					Commit: &githubapi.Commit{Message: githubapi.String("Implement dark mode")},
				},
				{
					SHA:    githubapi.String("sha-orphan"),
					Commit: &githubapi.Commit{Message: githubapi.String("Fix typo in README")},
				},
			})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
}

func TestGenerateForRepo(t *testing.T) {
	server := newGitHubStub(t)
	defer server.Close()

	client := githubapi.NewClient(server.Client())
	baseURL, _ := url.Parse(server.URL + "/")
	client.BaseURL = baseURL

	cfg := &config.Config{OutputDir: t.TempDir()}
	writer := output.NewWriter(cfg.OutputDir)

	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	path, err := generateForRepo(context.Background(), client, ai.NewNoopSummarizer(),
		writer, cfg, config.Repo{Owner: "acme", Name: "widgets"}, since, until)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written notes: %v", err)
	}

	// The PR line and the orphan commit survive; the PR-subsumed commit
	// must not appear
	text := string(content)
	if !strings.Contains(text, "PR: Add dark mode — Theme toggle in settings") {
		t.Errorf("notes missing PR line: %q", text)
	}
	if !strings.Contains(text, "Commit: Fix typo in README") {
		t.Errorf("notes missing orphan commit line: %q", text)
	}
	if strings.Contains(text, "Implement dark mode") {
		t.Errorf("PR-subsumed commit leaked into the notes: %q", text)
	}
}
