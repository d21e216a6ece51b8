package runstate_test

import (
	"context"
	"testing"

	"themesync/internal/runstate"
	"themesync/internal/testsupport"
)

func sampleItems() []runstate.WorkItem {
	return []runstate.WorkItem{
		{RatingKey: "101", FolderTitle: "Alien", FolderYear: "1979", FolderID: "f1", ThemePath: "/mnt/movies/Alien (1979)/theme.mp3"},
		{RatingKey: "102", FolderTitle: "Heat", FolderYear: "1995", FolderID: "f2", ThemePath: "/mnt/movies/Heat (1995)/theme.mp3"},
		{RatingKey: "103", FolderTitle: "Bare Name", FolderYear: "", FolderID: "f3", ThemePath: "/mnt/movies/Bare Name/theme.mp3"},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	items := sampleItems()
	if err := store.Save(ctx, "run-1", items); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runID, loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if runID != "run-1" {
		t.Fatalf("runID = %q", runID)
	}
	if len(loaded) != len(items) {
		t.Fatalf("loaded %d items, want %d", len(loaded), len(items))
	}
	for i := range items {
		if loaded[i] != items[i] {
			t.Fatalf("item %d = %+v, want %+v", i, loaded[i], items[i])
		}
	}
}

func TestLoadEmptySlot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	runID, items, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if runID != "" || items != nil {
		t.Fatalf("expected empty slot, got %q / %+v", runID, items)
	}
}

func TestSaveReplacesPreviousSlot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.Save(ctx, "run-1", sampleItems()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save(ctx, "run-2", sampleItems()[2:]); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	runID, items, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if runID != "run-2" || len(items) != 1 {
		t.Fatalf("slot not replaced: %q / %d items", runID, len(items))
	}
}

func TestClearEmptiesSlot(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.Save(ctx, "run-1", sampleItems()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	runID, items, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if runID != "" || len(items) != 0 {
		t.Fatalf("slot not cleared: %q / %d items", runID, len(items))
	}
}

func TestSaveRequiresRunID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if err := store.Save(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty run id")
	}
}

func TestReopenSeesPersistedState(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first, err := runstate.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Save(ctx, "run-1", sampleItems()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := runstate.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	runID, items, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if runID != "run-1" || len(items) != 3 {
		t.Fatalf("state lost across reopen: %q / %d items", runID, len(items))
	}
}
