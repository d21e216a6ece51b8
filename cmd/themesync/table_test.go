package main

import (
	"strings"
	"testing"

	"themesync/internal/services/drive"
)

func TestFolderTableRendersTitlesAndYears(t *testing.T) {
	out := folderTable([]drive.Folder{
		{Title: "Alien", Year: "1979", ID: "f1"},
		{Title: "Bare Name", ID: "f2"},
	})

	for _, want := range []string{"Title", "Year", "Alien", "1979", "Bare Name"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in table:\n%s", want, out)
		}
	}
}

func TestSettingsTableRendersPairs(t *testing.T) {
	out := settingsTable([][2]string{
		{"plex.url", "http://127.0.0.1:32400"},
		{"sync.batch_size", "5"},
	})

	for _, want := range []string{"Setting", "Value", "plex.url", "http://127.0.0.1:32400", "sync.batch_size"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in table:\n%s", want, out)
		}
	}
}
