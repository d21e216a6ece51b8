// Package reports writes the plain-text artifacts produced by sync and audit
// runs. Each report is a fixed-name file under the configured reports
// directory, one entry per line, so runs overwrite the previous snapshot.
package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Report filenames within the reports directory.
const (
	FoldersFile         = "discovered_folders.txt"
	WithMetadataFile    = "themes_with_metadata.txt"
	WithoutMetadataFile = "themes_without_metadata.txt"
	NoThemeFile         = "movies_without_theme.txt"
	UnmatchedFile       = "unmatched_movies.txt"
	ErrorsFile          = "errors.txt"
	DeletionLogFile     = "deletion_log.txt"
)

// FolderEntry is one remote movie folder discovered during listing.
type FolderEntry struct {
	Title string
	Year  string
}

// FileEntry is one local theme file referenced by a report.
type FileEntry struct {
	Title string
	Path  string
	Size  int64
}

// ErrorEntry records a per-item failure from a sync run.
type ErrorEntry struct {
	Title  string
	Detail string
}

// DeletionOutcome labels what happened to one deletion candidate.
type DeletionOutcome string

const (
	DeletionDeleted       DeletionOutcome = "deleted"
	DeletionRefreshFailed DeletionOutcome = "deleted, refresh failed"
	DeletionNotFound      DeletionOutcome = "not found"
	DeletionFailed        DeletionOutcome = "delete failed"
)

// DeletionEntry is one line of the deletion log.
type DeletionEntry struct {
	Title   string
	Path    string
	Outcome DeletionOutcome
	Detail  string
}

// Writer emits report files into a single directory.
type Writer struct {
	dir string
	now func() time.Time
}

// New returns a Writer rooted at dir. The directory is created on first write.
func New(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// Dir returns the directory reports are written into.
func (w *Writer) Dir() string {
	return w.dir
}

// Folders writes the discovered-folders report and returns its path.
func (w *Writer) Folders(entries []FolderEntry) (string, error) {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Year != "" {
			lines = append(lines, fmt.Sprintf("%s (%s)", entry.Title, entry.Year))
			continue
		}
		lines = append(lines, entry.Title)
	}
	return w.write(FoldersFile, fmt.Sprintf("%d folders discovered", len(entries)), lines)
}

// Unmatched writes the report of local movies no remote folder matched.
func (w *Writer) Unmatched(entries []FolderEntry) (string, error) {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Year != "" {
			lines = append(lines, fmt.Sprintf("%s (%s)", entry.Title, entry.Year))
			continue
		}
		lines = append(lines, entry.Title)
	}
	return w.write(UnmatchedFile, fmt.Sprintf("%d movies without a folder match", len(entries)), lines)
}

// WithMetadata writes the report of theme files whose movie carries theme
// metadata.
func (w *Writer) WithMetadata(entries []FileEntry) (string, error) {
	return w.writeFiles(WithMetadataFile, "themes with metadata", entries)
}

// WithoutMetadata writes the report of orphaned theme files, the deletion
// candidates of an audit.
func (w *Writer) WithoutMetadata(entries []FileEntry) (string, error) {
	return w.writeFiles(WithoutMetadataFile, "themes without metadata", entries)
}

// NoTheme writes the report of movies with no local theme file at all.
func (w *Writer) NoTheme(entries []FileEntry) (string, error) {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Title)
	}
	return w.write(NoThemeFile, fmt.Sprintf("%d movies without a theme", len(entries)), lines)
}

// Errors writes the per-item failure report for a sync run.
func (w *Writer) Errors(entries []ErrorEntry) (string, error) {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s", entry.Title, entry.Detail))
	}
	return w.write(ErrorsFile, fmt.Sprintf("%d failures", len(entries)), lines)
}

// DeletionLog writes the per-file outcome log of an audit deletion pass.
func (w *Writer) DeletionLog(entries []DeletionEntry) (string, error) {
	var deleted, failed int
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch entry.Outcome {
		case DeletionDeleted, DeletionRefreshFailed:
			deleted++
		case DeletionFailed:
			failed++
		}
		line := fmt.Sprintf("%s: %s [%s]", entry.Title, entry.Path, entry.Outcome)
		if entry.Detail != "" {
			line += " " + entry.Detail
		}
		lines = append(lines, line)
	}
	header := fmt.Sprintf("%d candidates, %d deleted, %d failed", len(entries), deleted, failed)
	return w.write(DeletionLogFile, header, lines)
}

func (w *Writer) writeFiles(name, label string, entries []FileEntry) (string, error) {
	var total int64
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		total += entry.Size
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", entry.Title, entry.Path, humanize.Bytes(uint64(entry.Size))))
	}
	header := fmt.Sprintf("%d %s, %s total", len(entries), label, humanize.Bytes(uint64(total)))
	return w.write(name, header, lines)
}

func (w *Writer) write(name, header string, lines []string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", header)
	fmt.Fprintf(&b, "# generated %s\n\n", w.now().Format(time.RFC3339))
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}
	return path, nil
}
