package notes

const (
	// DefaultMaxItems is the item count above which a batch is split
	DefaultMaxItems = 40
	// DefaultMaxChars is the total text length above which a batch is split
	DefaultMaxChars = 10000
	// DefaultChunkSize is the number of items per chunk when splitting
	DefaultChunkSize = 30
)

// NeedsChunking reports whether the item list is too large for a single
// summarization call: more than maxItems items, or more than maxChars total
// characters of item text. A batch exactly at both limits fits.
func NeedsChunking(items []Item, maxItems, maxChars int) bool {
	if len(items) > maxItems {
		return true
	}
	total := 0
	for _, item := range items {
		total += len(item.Text)
	}
	return total > maxChars
}

// Chunk splits items into consecutive groups of the given size, the last
// group possibly shorter. No item is reordered, dropped, or duplicated:
// concatenating the result in order reproduces the input exactly.
// Panics if size is less than 1.
func Chunk(items []Item, size int) [][]Item {
	if size < 1 {
		panic("notes: chunk size must be at least 1")
	}

	chunks := make([][]Item, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}

	return chunks
}
