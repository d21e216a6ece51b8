package sync

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"themesync/internal/config"
	"themesync/internal/logging"
	"themesync/internal/pathmap"
	"themesync/internal/reports"
	"themesync/internal/runstate"
	"themesync/internal/services/drive"
	"themesync/internal/services/plex"
)

// Engine drives one theme download run end to end.
type Engine struct {
	cfg     *config.Config
	plex    plex.Service
	drive   drive.Service
	store   *runstate.Store
	mapper  *pathmap.Mapper
	reports *reports.Writer
	logger  *slog.Logger

	sleep   func(ctx context.Context, d time.Duration) error
	randInt func(n int) int
	newID   func() string
}

// Result summarizes a completed or interrupted run.
type Result struct {
	RunID         string
	Resumed       bool
	Folders       int
	Unmatched     int
	Queued        int
	Skipped       int
	Downloaded    []string
	Missing       []string
	Failed        []reports.ErrorEntry
	RateLimited   bool
	Remaining     int
	Refreshed     int
	RefreshFailed int
}

// New wires an Engine from its collaborators. The path mapper and report
// writer are derived from the configuration.
func New(cfg *config.Config, plexSvc plex.Service, driveSvc drive.Service, store *runstate.Store, logger *slog.Logger) *Engine {
	mappings := make([]pathmap.Mapping, 0, len(cfg.PathMappings))
	for _, m := range cfg.PathMappings {
		mappings = append(mappings, pathmap.Mapping{Remote: m.Remote, Local: m.Local})
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		cfg:     cfg,
		plex:    plexSvc,
		drive:   driveSvc,
		store:   store,
		mapper:  pathmap.New(mappings),
		reports: reports.New(cfg.Paths.ReportDir),
		logger:  logging.WithComponent(logger, "sync"),
		sleep:   sleepCtx,
		randInt: rand.Intn,
		newID:   uuid.NewString,
	}
}

// Run executes a single pass: discover (or resume), download in batches, and
// refresh everything that landed. A rate-limited run returns a Result with
// RateLimited set and the unattempted remainder persisted for the next pass.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	units, err := e.discover(ctx, result)
	if err != nil {
		return nil, err
	}

	var downloaded []workUnit
	procErr := e.process(ctx, result, units, &downloaded)

	// Refresh runs even when the download pass was cut short so that
	// everything already on disk becomes visible in the library.
	e.refreshDownloaded(ctx, result, downloaded)

	if _, reportErr := e.reports.Errors(result.Failed); reportErr != nil {
		e.logger.Warn("failed to write error report", logging.Error(reportErr))
	}

	if procErr != nil {
		return result, procErr
	}
	if !result.RateLimited {
		if err := e.store.Clear(ctx); err != nil {
			return result, err
		}
	}
	return result, nil
}

// RunUntilComplete repeats Run after the configured cooldown whenever a pass
// ends rate-limited. A cooldown of zero disables the retry loop.
func (e *Engine) RunUntilComplete(ctx context.Context) (*Result, error) {
	for {
		result, err := e.Run(ctx)
		if err != nil || !result.RateLimited || e.cfg.Sync.RetryCooldownMinutes <= 0 {
			return result, err
		}
		cooldown := time.Duration(e.cfg.Sync.RetryCooldownMinutes) * time.Minute
		e.logger.Info("rate limited; waiting before retry",
			logging.Duration("cooldown", cooldown),
			logging.Int("remaining", result.Remaining))
		if err := e.sleep(ctx, cooldown); err != nil {
			return result, err
		}
	}
}

// ListFolders fetches the remote movie folder listing and writes the
// discovered-folders report.
func (e *Engine) ListFolders(ctx context.Context) ([]drive.Folder, error) {
	folders, err := e.drive.ListMovieFolders(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]reports.FolderEntry, 0, len(folders))
	for _, folder := range folders {
		entries = append(entries, reports.FolderEntry{Title: folder.Title, Year: folder.Year})
	}
	if _, err := e.reports.Folders(entries); err != nil {
		return nil, err
	}
	return folders, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
