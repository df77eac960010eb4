package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)
	writer.now = func() time.Time {
		return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	}

	path, err := writer.Write("acme", "widgets", "## Features\n- Dark mode\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(dir, "RELEASE_NOTES_acme_widgets_20250615_093000.md")
	if path != expected {
		t.Errorf("expected path %s, got %s", expected, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if string(content) != "## Features\n- Dark mode\n" {
		t.Errorf("unexpected file content: %q", content)
	}
}

func TestWriter_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	writer := NewWriter(dir)

	if _, err := writer.Write("acme", "widgets", "notes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory was not created: %v", err)
	}
}

func TestWriter_DistinctRunsDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir)

	calls := 0
	writer.now = func() time.Time {
		calls++
		return time.Date(2025, 6, 15, 9, 30, calls, 0, time.UTC)
	}

	first, err := writer.Write("acme", "widgets", "run one")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := writer.Write("acme", "widgets", "run two")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Errorf("repeated runs should not share a filename: %s", first)
	}
}
