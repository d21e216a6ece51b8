package analyze

import (
	"context"
	"os"

	"themesync/internal/logging"
	"themesync/internal/reports"
)

// Delete removes the given orphaned theme files and refreshes each movie so
// the server forgets the stale theme. Every candidate gets an outcome entry;
// the full log is written as the deletion report.
func (a *Analyzer) Delete(ctx context.Context, items []Item) ([]reports.DeletionEntry, error) {
	entries := make([]reports.DeletionEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, a.deleteOne(ctx, item))
	}
	if _, err := a.reports.DeletionLog(entries); err != nil {
		return entries, err
	}
	return entries, nil
}

func (a *Analyzer) deleteOne(ctx context.Context, item Item) reports.DeletionEntry {
	entry := reports.DeletionEntry{Title: item.Title, Path: item.ThemePath}

	if _, err := os.Stat(item.ThemePath); os.IsNotExist(err) {
		entry.Outcome = reports.DeletionNotFound
		a.logger.Warn("deletion candidate already gone", logging.String("path", item.ThemePath))
		return entry
	}
	if err := os.Remove(item.ThemePath); err != nil {
		entry.Outcome = reports.DeletionFailed
		entry.Detail = err.Error()
		a.logger.Error("failed to delete theme",
			logging.String("path", item.ThemePath),
			logging.Error(err))
		return entry
	}

	if err := a.plex.Refresh(ctx, item.RatingKey); err != nil {
		entry.Outcome = reports.DeletionRefreshFailed
		entry.Detail = err.Error()
		a.logger.Warn("deleted theme but refresh failed",
			logging.String("title", item.Title),
			logging.Error(err))
		return entry
	}

	entry.Outcome = reports.DeletionDeleted
	a.logger.Info("deleted orphaned theme",
		logging.String("title", item.Title),
		logging.String("path", item.ThemePath))
	return entry
}
