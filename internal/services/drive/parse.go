package drive

import (
	"regexp"
	"strings"

	"themesync/internal/services"
)

var (
	folderNamePattern = regexp.MustCompile(`(.*?)\s*\((\d{4})\)`)
	folderURLPattern  = regexp.MustCompile(`folders/([a-zA-Z0-9_-]+)`)
	bareIDPattern     = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ParseFolderName splits a folder name of the form "<title> (<year>)" into
// its parts. Names without a parenthesized year are returned whole with an
// empty year; that absence is a distinct state, not a placeholder.
func ParseFolderName(name string) (title, year string) {
	if m := folderNamePattern.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1]), m[2]
	}
	return name, ""
}

// FolderIDFromURL extracts the folder identifier from a Drive folder URL.
// A value that is already a bare identifier passes through unchanged.
func FolderIDFromURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if m := folderURLPattern.FindStringSubmatch(raw); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(raw) {
		return raw, nil
	}
	return "", services.Wrap(services.ErrConfiguration, "drive", "parse folder url", "no folder id in "+raw, nil)
}
