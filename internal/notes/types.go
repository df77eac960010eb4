package notes

import "time"

// ChangeRequest represents a merged pull request within the query window
type ChangeRequest struct {
	Number      int       // PR number, unique within a repository
	Title       string    // PR title
	Description string    // First line of the PR body (may be empty)
	Author      string    // Author login
	MergedAt    time.Time // Merge timestamp, inside the query window
	CommitSHAs  []string  // SHAs of every commit that is part of the merged PR
}

// Commit represents a single commit fetched for the query window
type Commit struct {
	SHA     string // Full content hash
	Message string // Commit message; only the first line is rendered
}

// ItemKind identifies which kind of source record produced an Item
type ItemKind int

const (
	// KindChangeRequest marks an item derived from a merged pull request
	KindChangeRequest ItemKind = iota
	// KindCommit marks an item derived from an orphan commit
	KindCommit
)

// Item is the normalized unit the summarizer consumes: a provenance tag
// plus a single rendered text line. Items exist only for the duration of
// one pipeline run.
type Item struct {
	Kind ItemKind
	Text string
}

// Texts returns the rendered line of each item, preserving order
func Texts(items []Item) []string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.Text
	}
	return lines
}
