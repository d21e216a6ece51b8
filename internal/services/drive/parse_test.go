package drive_test

import (
	"testing"

	"themesync/internal/services/drive"
)

func TestParseFolderName(t *testing.T) {
	cases := []struct {
		name      string
		wantTitle string
		wantYear  string
	}{
		{"Alien (1979)", "Alien", "1979"},
		{"The Thing (1982) [remastered]", "The Thing", "1982"},
		{"Fast & Furious (2009)", "Fast & Furious", "2009"},
		{"No Year Here", "No Year Here", ""},
		{"Parens (But No Year)", "Parens (But No Year)", ""},
		{"1917 (2019)", "1917", "2019"},
	}
	for _, tc := range cases {
		title, year := drive.ParseFolderName(tc.name)
		if title != tc.wantTitle || year != tc.wantYear {
			t.Errorf("ParseFolderName(%q) = (%q, %q), want (%q, %q)", tc.name, title, year, tc.wantTitle, tc.wantYear)
		}
	}
}

func TestFolderIDFromURL(t *testing.T) {
	id, err := drive.FolderIDFromURL("https://drive.google.com/drive/folders/1AbC_d-9?usp=sharing")
	if err != nil || id != "1AbC_d-9" {
		t.Fatalf("got (%q, %v)", id, err)
	}
}

func TestFolderIDFromBareID(t *testing.T) {
	id, err := drive.FolderIDFromURL("1AbC_d-9")
	if err != nil || id != "1AbC_d-9" {
		t.Fatalf("got (%q, %v)", id, err)
	}
}

func TestFolderIDRejectsGarbage(t *testing.T) {
	if _, err := drive.FolderIDFromURL("https://example.com/nothing/here"); err == nil {
		t.Fatal("expected error for URL without folder id")
	}
}
