package notes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// NoChangesMessage is returned when there is nothing to summarize
const NoChangesMessage = "No changes found in the selected period."

// mergeInstruction asks the summarizer to fold per-chunk summaries into one
// coherent document. Merging the chunk summaries textually would duplicate
// the category headings, so the merge goes back through the summarizer.
const mergeInstruction = "Here are several summaries of code changes for a release. " +
	"Write a single, clear, categorized release note in Markdown for end-users, " +
	"grouping by Features, Fixes, Improvements."

// SummarizeFunc turns an ordered, non-empty list of change lines into a
// categorized Markdown summary. Implementations may fail; the aggregator
// treats any failure as fatal for the whole run.
type SummarizeFunc func(ctx context.Context, items []string) (string, error)

// Aggregate produces the final release-note text for an item list.
//
// Small batches are summarized in a single call. Larger ones are split into
// fixed-size chunks, each chunk summarized independently in order, and the
// chunk summaries merged with one more summarize call on a synthesized
// meta-item. A single chunk's summary is returned verbatim, with no second
// round-trip.
//
// Any summarize failure aborts the aggregation: a release note covering
// only some of the chunks is never assembled.
func Aggregate(ctx context.Context, items []Item, summarize SummarizeFunc, chunkSize int) (string, error) {
	if len(items) == 0 {
		return NoChangesMessage, nil
	}
	if chunkSize < 1 {
		return "", fmt.Errorf("invalid chunk size %d", chunkSize)
	}

	logger, ok := ctx.Value("logger").(*slog.Logger)
	if !ok {
		logger = slog.Default()
	}

	chunks := Chunk(items, chunkSize)
	logger.Debug("Summarizing item chunks", "items", len(items), "chunks", len(chunks))

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := summarize(ctx, Texts(chunk))
		if err != nil {
			return "", fmt.Errorf("failed to summarize chunk %d of %d: %w", i+1, len(chunks), err)
		}
		summaries = append(summaries, summary)
	}

	if len(summaries) == 1 {
		return summaries[0], nil
	}

	logger.Debug("Merging chunk summaries", "summaries", len(summaries))
	merged, err := summarize(ctx, []string{metaItem(summaries)})
	if err != nil {
		return "", fmt.Errorf("failed to merge chunk summaries: %w", err)
	}

	return merged, nil
}

// metaItem builds the single meta-item fed back through the summarizer:
// the merge instruction followed by each chunk summary labeled by its
// 1-based chunk index, in chunk order.
func metaItem(summaries []string) string {
	var builder strings.Builder
	builder.WriteString(mergeInstruction)
	builder.WriteString("\n\n")
	for i, summary := range summaries {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		fmt.Fprintf(&builder, "Batch %d:\n%s", i+1, summary)
	}
	return builder.String()
}
