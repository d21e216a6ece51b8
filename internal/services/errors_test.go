package services_test

import (
	"errors"
	"fmt"
	"testing"

	"themesync/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrRateLimited, "drive", "list folders", "quota denied", nil)
	if !services.IsRateLimited(err) {
		t.Fatalf("expected rate-limit classification for %v", err)
	}
	if errors.Is(err, services.ErrNotFound) {
		t.Fatalf("unexpected not-found classification for %v", err)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := services.Wrap(services.ErrTransient, "plex", "refresh", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "drive", "download", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("nil marker should default to transient: %v", err)
	}
}

func TestIsRateLimitedThroughWrapping(t *testing.T) {
	inner := services.Wrap(services.ErrRateLimited, "drive", "find file", "", nil)
	outer := fmt.Errorf("batch 2 item 3: %w", inner)
	if !services.IsRateLimited(outer) {
		t.Fatalf("wrapped rate limit lost classification: %v", outer)
	}
}
