package notes

import (
	"fmt"
	"strings"
)

// BuildItems renders change requests and orphan commits into the uniform
// item list the summarizer consumes. PR-derived items come first, then
// commit-derived items, each group in fetch order.
//
// Text passes through with surrounding whitespace trimmed but otherwise
// verbatim; Markdown metacharacters in titles or messages are not escaped
// before they reach the prompt. Known limitation.
func BuildItems(changeRequests []ChangeRequest, orphanCommits []Commit) []Item {
	items := make([]Item, 0, len(changeRequests)+len(orphanCommits))

	for _, cr := range changeRequests {
		summary := strings.TrimSpace(cr.Title)
		if desc := strings.TrimSpace(cr.Description); desc != "" {
			summary = fmt.Sprintf("%s — %s", summary, desc)
		}
		items = append(items, Item{Kind: KindChangeRequest, Text: "PR: " + summary})
	}

	for _, commit := range orphanCommits {
		line := firstLine(commit.Message)
		items = append(items, Item{Kind: KindCommit, Text: "Commit: " + line})
	}

	return items
}

// BuildCommitItems renders a commits-only batch, for repositories where PR
// metadata is not fetched. When skipMerges is set, merge commits (message
// starting with "merge", case-insensitive) are dropped; the PR-aware
// pipeline does not need this because FilterOrphans already removes
// PR-subsumed merge commits.
func BuildCommitItems(commits []Commit, skipMerges bool) []Item {
	items := make([]Item, 0, len(commits))
	for _, commit := range commits {
		line := firstLine(commit.Message)
		if line == "" {
			continue
		}
		if skipMerges && strings.HasPrefix(strings.ToLower(line), "merge") {
			continue
		}
		items = append(items, Item{Kind: KindCommit, Text: "Commit: " + line})
	}
	return items
}

// firstLine extracts the trimmed first line of a commit message
func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}
