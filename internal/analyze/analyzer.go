package analyze

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"themesync/internal/config"
	"themesync/internal/logging"
	"themesync/internal/pathmap"
	"themesync/internal/reports"
	"themesync/internal/services/plex"
)

// Item is one movie with its resolved local theme path.
type Item struct {
	RatingKey string
	Title     string
	ThemePath string
	Size      int64
}

// Classification buckets every movie in the library. WithoutMetadata holds
// the orphans: theme files on disk the server has no theme metadata for.
type Classification struct {
	WithMetadata    []Item
	WithoutMetadata []Item
	NoTheme         []Item
}

// Analyzer scans the movie library and reconciles theme files on disk with
// the server's metadata.
type Analyzer struct {
	cfg     *config.Config
	plex    plex.Service
	mapper  *pathmap.Mapper
	reports *reports.Writer
	logger  *slog.Logger

	progressOut io.Writer
}

// New wires an Analyzer. Progress output is discarded unless SetProgressOutput
// is called.
func New(cfg *config.Config, plexSvc plex.Service, logger *slog.Logger) *Analyzer {
	mappings := make([]pathmap.Mapping, 0, len(cfg.PathMappings))
	for _, m := range cfg.PathMappings {
		mappings = append(mappings, pathmap.Mapping{Remote: m.Remote, Local: m.Local})
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Analyzer{
		cfg:         cfg,
		plex:        plexSvc,
		mapper:      pathmap.New(mappings),
		reports:     reports.New(cfg.Paths.ReportDir),
		logger:      logging.WithComponent(logger, "audit"),
		progressOut: io.Discard,
	}
}

// SetProgressOutput directs the scan progress bar to w.
func (a *Analyzer) SetProgressOutput(w io.Writer) {
	a.progressOut = w
}

// Scan classifies every movie in the configured library and writes the three
// classification reports.
func (a *Analyzer) Scan(ctx context.Context) (*Classification, error) {
	movies, err := a.plex.Movies(ctx, a.cfg.Plex.MovieLibrary)
	if err != nil {
		return nil, err
	}

	bar := progressbar.NewOptions(len(movies),
		progressbar.OptionSetWriter(a.progressOut),
		progressbar.OptionSetDescription("scanning library"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	result := &Classification{}
	for _, movie := range movies {
		a.classify(movie, result)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if err := a.writeReports(result); err != nil {
		return nil, err
	}

	a.logger.Info("scan complete",
		logging.Int("movies", len(movies)),
		logging.Int("withMetadata", len(result.WithMetadata)),
		logging.Int("withoutMetadata", len(result.WithoutMetadata)),
		logging.Int("noTheme", len(result.NoTheme)))
	return result, nil
}

func (a *Analyzer) classify(movie plex.Movie, result *Classification) {
	item := Item{RatingKey: movie.RatingKey, Title: movie.Title}

	// A movie the server holds no file location for cannot have a local
	// theme either.
	if movie.FilePath == "" {
		result.NoTheme = append(result.NoTheme, item)
		return
	}

	local := a.mapper.Apply(movie.FilePath)
	item.ThemePath = filepath.Join(filepath.Dir(local), a.cfg.Sync.ThemeFilename)

	info, err := os.Stat(item.ThemePath)
	if err != nil || info.Size() == 0 {
		result.NoTheme = append(result.NoTheme, item)
		return
	}
	item.Size = info.Size()

	if hasThemeMetadata(movie) {
		result.WithMetadata = append(result.WithMetadata, item)
		return
	}
	result.WithoutMetadata = append(result.WithoutMetadata, item)
}

// hasThemeMetadata reports whether the server already knows about a theme for
// the movie: either a populated theme attribute or a "theme=" fragment leaked
// into one of the text fields.
func hasThemeMetadata(movie plex.Movie) bool {
	if movie.Theme != "" {
		return true
	}
	for _, field := range []string{movie.Summary, movie.Title, movie.OriginalTitle, movie.SortTitle, movie.Tagline} {
		if strings.Contains(field, "theme=") {
			return true
		}
	}
	return false
}

func (a *Analyzer) writeReports(result *Classification) error {
	if _, err := a.reports.WithMetadata(toFileEntries(result.WithMetadata)); err != nil {
		return err
	}
	if _, err := a.reports.WithoutMetadata(toFileEntries(result.WithoutMetadata)); err != nil {
		return err
	}
	noTheme := make([]reports.FileEntry, 0, len(result.NoTheme))
	for _, item := range result.NoTheme {
		noTheme = append(noTheme, reports.FileEntry{Title: item.Title})
	}
	if _, err := a.reports.NoTheme(noTheme); err != nil {
		return err
	}
	return nil
}

func toFileEntries(items []Item) []reports.FileEntry {
	entries := make([]reports.FileEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, reports.FileEntry{Title: item.Title, Path: item.ThemePath, Size: item.Size})
	}
	return entries
}
