package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/relnotes/relnotes-cli/internal/ai"
	"github.com/relnotes/relnotes-cli/internal/config"
	"github.com/relnotes/relnotes-cli/internal/derive"
	"github.com/relnotes/relnotes-cli/internal/github"
	"github.com/relnotes/relnotes-cli/internal/notes"
	"github.com/relnotes/relnotes-cli/internal/output"

	githubapi "github.com/google/go-github/v66/github"
)

var (
	configPath string
	repoFlags  []string
	sinceRaw   string
	untilRaw   string
	outDir     string
	provider   string
	model      string
	verbose    bool
	quiet      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate release notes for the configured repositories",
	Long: `Generate fetches the merged pull requests and commits of each configured
repository within the date window, removes commits already represented by a
merged PR, and summarizes the remaining changes into one categorized
Markdown release-note file per repository.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: config.yaml if present)")
	generateCmd.Flags().StringArrayVar(&repoFlags, "repo", nil, "Repository as owner/name (repeatable, overrides config file)")
	generateCmd.Flags().StringVar(&sinceRaw, "since", "", "Window start date (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&untilRaw, "until", "", "Window end date (YYYY-MM-DD, inclusive)")
	generateCmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory for release-note files")
	generateCmd.Flags().StringVar(&provider, "provider", "", "Summarization provider: openai, gemini, ollama, or none")
	generateCmd.Flags().StringVar(&model, "model", "", "Provider model name (provider default if empty)")
	generateCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable verbose progress output")
	generateCmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress all progress output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Flags{
		ConfigPath: configPath,
		Repos:      repoFlags,
		Since:      sinceRaw,
		Until:      untilRaw,
		OutputDir:  outDir,
		Provider:   provider,
		Model:      model,
		Verbose:    verbose,
		Quiet:      quiet,
	})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)
	ctx := context.WithValue(context.Background(), "logger", logger)

	since, until, err := derive.Window(cfg.Since, cfg.Until)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger.Debug("Initializing GitHub client")
	client := github.NewClient(cfg.GitHubToken)

	summarizer, err := ai.New(ctx, ai.Options{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		OpenAIKey:  cfg.OpenAIKey,
		GeminiKey:  cfg.GeminiKey,
		OllamaHost: cfg.OllamaHost,
	})
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger.Debug("Summarization provider ready", "provider", summarizer.Name())

	writer := output.NewWriter(cfg.OutputDir)

	// Each repository is a fully independent run; a failure aborts the
	// whole invocation rather than emitting a partial set of notes
	var written []string
	for _, repo := range cfg.Repos {
		logger.Info("Processing repository", "repo", repo.FullName())

		path, err := generateForRepo(ctx, client, summarizer, writer, cfg, repo, since, until)
		if err != nil {
			return fmt.Errorf("failed to generate release notes for %s: %w", repo.FullName(), err)
		}

		logger.Info("Release notes written", "repo", repo.FullName(), "path", path)
		written = append(written, path)
	}

	logger.Info("All release notes generated", "repos", len(cfg.Repos), "files", len(written))
	return nil
}

// generateForRepo runs the full pipeline for one repository: fetch, dedup,
// normalize, summarize, write
func generateForRepo(ctx context.Context, client *githubapi.Client, summarizer ai.Summarizer,
	writer *output.Writer, cfg *config.Config, repo config.Repo, since, until time.Time) (string, error) {

	logger, ok := ctx.Value("logger").(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}

	pulls, err := github.FetchMergedPulls(ctx, client, repo.Owner, repo.Name, since, until)
	if err != nil {
		return "", err
	}
	logger.Info("Found merged PRs", "repo", repo.FullName(), "count", len(pulls))

	commits, err := github.FetchCommits(ctx, client, repo.Owner, repo.Name, since, until)
	if err != nil {
		return "", err
	}
	logger.Info("Found commits", "repo", repo.FullName(), "count", len(commits))

	orphans := notes.FilterOrphans(commits, pulls)
	logger.Info("Found commits not in any merged PR", "repo", repo.FullName(), "count", len(orphans))

	var items []notes.Item
	if cfg.SkipMergeCommits {
		items = append(notes.BuildItems(pulls, nil), notes.BuildCommitItems(orphans, true)...)
	} else {
		items = notes.BuildItems(pulls, orphans)
	}
	logger.Info("Prepared change items", "repo", repo.FullName(), "count", len(items))

	var releaseNotes string
	switch {
	case len(items) == 0:
		logger.Info("No changes in window", "repo", repo.FullName())
		releaseNotes = notes.NoChangesMessage

	case notes.NeedsChunking(items, notes.DefaultMaxItems, notes.DefaultMaxChars):
		logger.Info("Large change set detected, summarizing in chunks", "repo", repo.FullName(), "items", len(items))
		releaseNotes, err = notes.Aggregate(ctx, items, summarizer.Summarize, notes.DefaultChunkSize)
		if err != nil {
			return "", err
		}

	default:
		logger.Info("Summarizing changes", "repo", repo.FullName(), "items", len(items))
		releaseNotes, err = summarizer.Summarize(ctx, notes.Texts(items))
		if err != nil {
			return "", err
		}
	}

	// Final notes go to stdout; progress stays on stderr
	fmt.Printf("\n--- Release Notes: %s ---\n\n%s\n\n", repo.FullName(), releaseNotes)

	return writer.Write(repo.Owner, repo.Name, releaseNotes)
}

// setupLogger creates a logger configured for progress output
func setupLogger(cfg *config.Config) *slog.Logger {
	if cfg.Quiet {
		// Discard all log output when quiet
		return slog.New(slog.NewTextHandler(os.NewFile(0, os.DevNull), &slog.HandlerOptions{
			Level: slog.LevelError + 1,
		}))
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	// Use stderr for progress so stdout stays clean for the notes
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
