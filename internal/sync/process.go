package sync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"themesync/internal/logging"
	"themesync/internal/reports"
	"themesync/internal/runstate"
	"themesync/internal/services"
)

// process downloads the work list in batches. Hitting the provider's rate
// limit persists every unattempted unit, the in-flight one included, and
// ends the pass without error.
func (e *Engine) process(ctx context.Context, result *Result, units []workUnit, downloaded *[]workUnit) error {
	total := len(units)
	if total == 0 {
		return nil
	}
	batchSize := e.cfg.Sync.BatchSize
	batches := (total + batchSize - 1) / batchSize

	for index := 0; index < total; index++ {
		batch := index/batchSize + 1
		inBatch := index%batchSize + 1
		batchLen := batchSize
		if remaining := total - (batch-1)*batchSize; remaining < batchLen {
			batchLen = remaining
		}
		if inBatch == 1 {
			e.logger.Info("starting batch",
				logging.Int("batch", batch),
				logging.Int("batches", batches),
				logging.Int("items", batchLen))
		}

		unit := units[index]
		e.logger.Info("fetching theme",
			logging.String("title", unit.title),
			logging.Int("item", inBatch),
			logging.Int("of", batchLen))

		err := e.fetch(ctx, unit)
		switch {
		case err == nil:
			*downloaded = append(*downloaded, unit)
			result.Downloaded = append(result.Downloaded, unit.title)
		case errors.Is(err, errNoThemeFile):
			e.logger.Info("no theme file in folder", logging.String("title", unit.title))
			result.Missing = append(result.Missing, unit.title)
		case services.IsRateLimited(err):
			remainder := toWorkItems(units[index:])
			if saveErr := e.store.Save(ctx, result.RunID, remainder); saveErr != nil {
				return saveErr
			}
			result.RateLimited = true
			result.Remaining = len(remainder)
			e.logger.Warn("rate limited; run state saved",
				logging.Int("remaining", len(remainder)),
				logging.String("runID", result.RunID))
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			e.logger.Error("download failed",
				logging.String("title", unit.title),
				logging.Error(err))
			result.Failed = append(result.Failed, reports.ErrorEntry{Title: unit.title, Detail: err.Error()})
		}

		if inBatch == batchLen && index+1 < total {
			delay := e.batchDelay()
			e.logger.Info("batch complete; pausing", logging.Duration("delay", delay))
			if err := e.sleep(ctx, delay); err != nil {
				return err
			}
		}
	}
	return nil
}

var errNoThemeFile = errors.New("folder has no theme file")

func (e *Engine) fetch(ctx context.Context, unit workUnit) error {
	fileID, err := e.drive.FindFile(ctx, unit.folderID, e.cfg.Sync.ThemeFilename)
	if err != nil {
		return err
	}
	if fileID == "" {
		return errNoThemeFile
	}
	if err := os.MkdirAll(filepath.Dir(unit.themePath), 0o755); err != nil {
		return err
	}
	return e.drive.Download(ctx, fileID, unit.themePath)
}

// refreshDownloaded asks the media server to rescan every item whose theme
// landed this pass. Failures are logged and do not stop the remaining
// refreshes.
func (e *Engine) refreshDownloaded(ctx context.Context, result *Result, downloaded []workUnit) {
	delay := time.Duration(e.cfg.Sync.RefreshDelaySeconds) * time.Second
	for i, unit := range downloaded {
		if i > 0 && delay > 0 {
			if err := e.sleep(ctx, delay); err != nil {
				return
			}
		}
		if err := e.plex.Refresh(ctx, unit.ratingKey); err != nil {
			e.logger.Warn("library refresh failed",
				logging.String("title", unit.title),
				logging.Error(err))
			result.RefreshFailed++
			continue
		}
		result.Refreshed++
	}
}

func (e *Engine) batchDelay() time.Duration {
	minSec := e.cfg.Sync.BatchDelayMinSeconds
	maxSec := e.cfg.Sync.BatchDelayMaxSeconds
	if maxSec <= minSec {
		return time.Duration(minSec) * time.Second
	}
	return time.Duration(minSec+e.randInt(maxSec-minSec+1)) * time.Second
}

func toWorkItems(units []workUnit) []runstate.WorkItem {
	items := make([]runstate.WorkItem, 0, len(units))
	for _, unit := range units {
		items = append(items, runstate.WorkItem{
			RatingKey:   unit.ratingKey,
			FolderTitle: unit.folderTitle,
			FolderYear:  unit.folderYear,
			FolderID:    unit.folderID,
			ThemePath:   unit.themePath,
		})
	}
	return items
}
