package pathmap_test

import (
	"testing"

	"themesync/internal/pathmap"
)

func TestApplyFirstMatchWins(t *testing.T) {
	mapper := pathmap.New([]pathmap.Mapping{
		{Remote: "/data/media/movies", Local: "/mnt/movies"},
		{Remote: "/data/media", Local: "/mnt/media"},
	})

	got := mapper.Apply("/data/media/movies/Alien (1979)/Alien.mkv")
	want := "/mnt/movies/Alien (1979)/Alien.mkv"
	if got != want {
		t.Fatalf("Apply = %q, want %q", got, want)
	}
}

func TestApplyOrderMatters(t *testing.T) {
	mapper := pathmap.New([]pathmap.Mapping{
		{Remote: "/data", Local: "/mnt"},
		{Remote: "/data/media/movies", Local: "/never"},
	})

	got := mapper.Apply("/data/media/movies/Alien (1979)/Alien.mkv")
	if got != "/mnt/media/movies/Alien (1979)/Alien.mkv" {
		t.Fatalf("expected earlier mapping to win, got %q", got)
	}
}

func TestApplyPassThrough(t *testing.T) {
	mapper := pathmap.New([]pathmap.Mapping{
		{Remote: "/data/media", Local: "/mnt/media"},
	})

	path := "/other/location/Alien.mkv"
	if got := mapper.Apply(path); got != path {
		t.Fatalf("expected pass-through, got %q", got)
	}
}

func TestEmptyRemotePrefixIgnored(t *testing.T) {
	mapper := pathmap.New([]pathmap.Mapping{
		{Remote: "  ", Local: "/mnt"},
	})

	path := "/data/Alien.mkv"
	if got := mapper.Apply(path); got != path {
		t.Fatalf("blank mapping should not rewrite, got %q", got)
	}
}
