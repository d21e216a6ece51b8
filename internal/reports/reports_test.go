package reports

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFoldersWritesTitlesWithYears(t *testing.T) {
	w := New(t.TempDir())

	path, err := w.Folders([]FolderEntry{
		{Title: "Alien", Year: "1979"},
		{Title: "Heat"},
	})
	if err != nil {
		t.Fatalf("Folders: %v", err)
	}

	content := readReport(t, path)
	if !strings.Contains(content, "# 2 folders discovered") {
		t.Fatalf("missing header: %q", content)
	}
	if !strings.Contains(content, "Alien (1979)\n") {
		t.Fatalf("missing year-formatted entry: %q", content)
	}
	if !strings.Contains(content, "Heat\n") {
		t.Fatalf("missing bare-title entry: %q", content)
	}
}

func TestUnmatchedListsTitles(t *testing.T) {
	w := New(t.TempDir())

	path, err := w.Unmatched([]FolderEntry{{Title: "Solaris", Year: "1972"}})
	if err != nil {
		t.Fatalf("Unmatched: %v", err)
	}

	content := readReport(t, path)
	if !strings.Contains(content, "# 1 movies without a folder match") {
		t.Fatalf("missing header: %q", content)
	}
	if !strings.Contains(content, "Solaris (1972)\n") {
		t.Fatalf("missing entry: %q", content)
	}
}

func TestWithoutMetadataIncludesHumanSizes(t *testing.T) {
	w := New(t.TempDir())

	path, err := w.WithoutMetadata([]FileEntry{
		{Title: "Alien", Path: "/movies/Alien (1979)/theme.mp3", Size: 2 * 1024 * 1024},
	})
	if err != nil {
		t.Fatalf("WithoutMetadata: %v", err)
	}

	content := readReport(t, path)
	if !strings.Contains(content, "2.1 MB") {
		t.Fatalf("expected humanized size in report: %q", content)
	}
	if filepath.Base(path) != WithoutMetadataFile {
		t.Fatalf("unexpected filename %s", path)
	}
}

func TestDeletionLogCountsOutcomes(t *testing.T) {
	w := New(t.TempDir())

	path, err := w.DeletionLog([]DeletionEntry{
		{Title: "Alien", Path: "/a/theme.mp3", Outcome: DeletionDeleted},
		{Title: "Heat", Path: "/b/theme.mp3", Outcome: DeletionRefreshFailed, Detail: "timeout"},
		{Title: "Tron", Path: "/c/theme.mp3", Outcome: DeletionFailed, Detail: "permission denied"},
		{Title: "Solaris", Path: "/d/theme.mp3", Outcome: DeletionNotFound},
	})
	if err != nil {
		t.Fatalf("DeletionLog: %v", err)
	}

	content := readReport(t, path)
	if !strings.Contains(content, "# 4 candidates, 2 deleted, 1 failed") {
		t.Fatalf("unexpected header: %q", content)
	}
	if !strings.Contains(content, "Heat: /b/theme.mp3 [deleted, refresh failed] timeout") {
		t.Fatalf("missing detail line: %q", content)
	}
}

func TestWriteCreatesReportsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	w := New(dir)

	if _, err := w.Errors(nil); err != nil {
		t.Fatalf("Errors: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ErrorsFile)); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func readReport(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	return string(data)
}
