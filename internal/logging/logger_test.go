package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)
	return slog.New(newConsoleHandler(&buf, levelVar)), &buf
}

func TestConsoleHandlerLiftsComponent(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.Info("downloaded theme", "component", "sync", "title", "Alien")

	line := buf.String()
	if !strings.Contains(line, "INFO sync: downloaded theme") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "title=Alien") {
		t.Fatalf("missing attr: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be lifted out of attrs: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.Warn("no match", "title", "The Thing (1982)")

	if !strings.Contains(buf.String(), `title="The Thing (1982)"`) {
		t.Fatalf("expected quoted value: %q", buf.String())
	}
}

func TestWithAttrsCarriesForward(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.With("run_id", "abc").Info("resuming")

	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Fatalf("expected inherited attr: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
