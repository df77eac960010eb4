package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer persists one release-note file per repository run
type Writer struct {
	Dir string

	// now is swappable for tests
	now func() time.Time
}

// NewWriter creates a writer rooted at the given output directory
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, now: time.Now}
}

// Write stores the release-note text for a repository and returns the path
// of the written file. The filename embeds the repository and a timestamp
// so repeated runs never overwrite each other.
func (w *Writer) Write(owner, name, content string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", w.Dir, err)
	}

	timestamp := w.now().Format("20060102_150405")
	filename := fmt.Sprintf("RELEASE_NOTES_%s_%s_%s.md", owner, name, timestamp)
	path := filepath.Join(w.Dir, filename)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write release notes to %s: %w", path, err)
	}

	return path, nil
}
