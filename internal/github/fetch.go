package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/relnotes/relnotes-cli/internal/notes"
)

// perPage is the GitHub API maximum page size
const perPage = 100

// FetchMergedPulls retrieves the pull requests merged within [since, until]
// inclusive, each carrying the full set of commit SHAs it subsumes.
//
// Closed PRs are listed newest-updated first; paging stops once a page ends
// with a PR last updated before the window start, since a merge always
// updates the PR.
func FetchMergedPulls(ctx context.Context, client *github.Client, owner, repo string, since, until time.Time) ([]notes.ChangeRequest, error) {
	logger, ok := ctx.Value("logger").(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}

	logger.Debug("Fetching merged pull requests", "repo", owner+"/"+repo,
		"since", since.Format("2006-01-02"), "until", until.Format("2006-01-02"))

	opts := &github.PullRequestListOptions{
		State:     "closed",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}

	var pulls []notes.ChangeRequest

	for {
		page, resp, err := client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests for %s/%s: %w", owner, repo, err)
		}

		exhausted := false
		for _, pr := range page {
			if pr.GetUpdatedAt().Time.Before(since) {
				exhausted = true
				break
			}
			if pr.MergedAt == nil {
				continue
			}

			mergedAt := pr.GetMergedAt().Time
			if mergedAt.Before(since) || mergedAt.After(until) {
				continue
			}

			shas, err := fetchPullCommitSHAs(ctx, client, owner, repo, pr.GetNumber())
			if err != nil {
				return nil, err
			}

			pulls = append(pulls, notes.ChangeRequest{
				Number:      pr.GetNumber(),
				Title:       strings.TrimSpace(pr.GetTitle()),
				Description: firstBodyLine(pr.GetBody()),
				Author:      pr.GetUser().GetLogin(),
				MergedAt:    mergedAt,
				CommitSHAs:  shas,
			})
		}

		if exhausted || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.Debug("Merged pull requests fetched", "repo", owner+"/"+repo, "count", len(pulls))
	return pulls, nil
}

// fetchPullCommitSHAs pages through a pull request's commits and collects
// their SHAs
func fetchPullCommitSHAs(ctx context.Context, client *github.Client, owner, repo string, number int) ([]string, error) {
	opts := &github.ListOptions{Page: 1, PerPage: perPage}

	var shas []string
	for {
		commits, resp, err := client.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits for PR #%d: %w", number, err)
		}

		for _, commit := range commits {
			shas = append(shas, commit.GetSHA())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return shas, nil
}

// FetchCommits retrieves all commits authored within [since, until],
// regardless of pull-request membership, in API order
func FetchCommits(ctx context.Context, client *github.Client, owner, repo string, since, until time.Time) ([]notes.Commit, error) {
	logger, ok := ctx.Value("logger").(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}

	logger.Debug("Fetching commits", "repo", owner+"/"+repo,
		"since", since.Format("2006-01-02"), "until", until.Format("2006-01-02"))

	opts := &github.CommitsListOptions{
		Since: since,
		Until: until,
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}

	var commits []notes.Commit
	for {
		page, resp, err := client.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits for %s/%s: %w", owner, repo, err)
		}

		for _, commit := range page {
			commits = append(commits, notes.Commit{
				SHA:     commit.GetSHA(),
				Message: commit.GetCommit().GetMessage(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.Debug("Commits fetched", "repo", owner+"/"+repo, "count", len(commits))
	return commits, nil
}

// firstBodyLine extracts the trimmed first line of a PR body
func firstBodyLine(body string) string {
	line, _, _ := strings.Cut(body, "\n")
	return strings.TrimSpace(line)
}
