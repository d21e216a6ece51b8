package sync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"themesync/internal/logging"
	"themesync/internal/match"
	"themesync/internal/reports"
	"themesync/internal/runstate"
	"themesync/internal/services"
)

// workUnit is one pending download after discovery and filtering.
type workUnit struct {
	ratingKey   string
	title       string
	folderTitle string
	folderYear  string
	folderID    string
	themePath   string
}

// discover builds the work list. A persisted run takes priority: its items
// are re-resolved through the media server by rating key and retried without
// touching the remote listing again.
func (e *Engine) discover(ctx context.Context, result *Result) ([]workUnit, error) {
	runID, saved, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if runID != "" {
		result.RunID = runID
		result.Resumed = true
		return e.resume(ctx, result, saved)
	}

	result.RunID = e.newID()

	movies, err := e.plex.Movies(ctx, e.cfg.Plex.MovieLibrary)
	if err != nil {
		return nil, err
	}
	folders, err := e.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	result.Folders = len(folders)
	if len(folders) == 0 {
		e.logger.Warn("remote listing returned no folders; check drive.folder_url")
		return nil, nil
	}

	items := make([]match.LocalItem, 0, len(movies))
	paths := make(map[string]string, len(movies))
	for _, movie := range movies {
		items = append(items, match.LocalItem{
			RatingKey: movie.RatingKey,
			Title:     movie.Title,
			Year:      movie.Year,
			FilePath:  movie.FilePath,
		})
		paths[movie.RatingKey] = movie.FilePath
	}
	remote := make([]match.RemoteFolder, 0, len(folders))
	for _, folder := range folders {
		remote = append(remote, match.RemoteFolder{Title: folder.Title, Year: folder.Year, ID: folder.ID})
	}

	matches, unmatched := match.Movies(items, remote)
	result.Unmatched = len(unmatched)
	unmatchedEntries := make([]reports.FolderEntry, 0, len(unmatched))
	for _, item := range unmatched {
		e.logger.Debug("no folder matched", logging.String("title", item.Title), logging.String("year", item.Year))
		unmatchedEntries = append(unmatchedEntries, reports.FolderEntry{Title: item.Title, Year: item.Year})
	}
	if _, err := e.reports.Unmatched(unmatchedEntries); err != nil {
		return nil, err
	}

	units := make([]workUnit, 0, len(matches))
	for _, m := range matches {
		if m.Local.FilePath == "" {
			e.logger.Warn("movie has no file location; skipping",
				logging.String("title", m.Local.Title))
			result.Skipped++
			continue
		}
		unit := workUnit{
			ratingKey:   m.Local.RatingKey,
			title:       displayTitle(m.Local.Title, m.Local.Year),
			folderTitle: m.Folder.Title,
			folderYear:  m.Folder.Year,
			folderID:    m.Folder.ID,
			themePath:   e.themePath(paths[m.Local.RatingKey]),
		}
		queued, err := e.filterExisting(unit)
		if err != nil {
			return nil, err
		}
		if !queued {
			result.Skipped++
			continue
		}
		units = append(units, unit)
	}
	result.Queued = len(units)

	e.logger.Info("discovery complete",
		logging.Int("folders", len(folders)),
		logging.Int("movies", len(movies)),
		logging.Int("queued", len(units)),
		logging.Int("unmatched", len(unmatched)))
	return units, nil
}

func (e *Engine) resume(ctx context.Context, result *Result, saved []runstate.WorkItem) ([]workUnit, error) {
	units := make([]workUnit, 0, len(saved))
	for _, item := range saved {
		movie, err := e.plex.Movie(ctx, item.RatingKey)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				e.logger.Warn("persisted movie no longer in library; dropping",
					logging.String("ratingKey", item.RatingKey),
					logging.String("folder", item.FolderTitle))
				continue
			}
			return nil, err
		}
		units = append(units, workUnit{
			ratingKey:   item.RatingKey,
			title:       displayTitle(movie.Title, movie.Year),
			folderTitle: item.FolderTitle,
			folderYear:  item.FolderYear,
			folderID:    item.FolderID,
			themePath:   item.ThemePath,
		})
	}
	result.Queued = len(units)
	e.logger.Info("resuming persisted run",
		logging.String("runID", result.RunID),
		logging.Int("queued", len(units)))
	return units, nil
}

// filterExisting reports whether the unit still needs a download. An existing
// empty theme file is removed so the download can replace it.
func (e *Engine) filterExisting(unit workUnit) (bool, error) {
	info, err := os.Stat(unit.themePath)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", unit.themePath, err)
	}
	if info.Size() > 0 {
		e.logger.Debug("theme already present", logging.String("title", unit.title))
		return false, nil
	}
	e.logger.Warn("removing empty theme file", logging.String("path", unit.themePath))
	if err := os.Remove(unit.themePath); err != nil {
		return false, fmt.Errorf("remove empty theme %s: %w", unit.themePath, err)
	}
	return true, nil
}

func (e *Engine) themePath(serverPath string) string {
	local := e.mapper.Apply(serverPath)
	return filepath.Join(filepath.Dir(local), e.cfg.Sync.ThemeFilename)
}

func displayTitle(title, year string) string {
	if year == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, year)
}
