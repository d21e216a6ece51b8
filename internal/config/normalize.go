package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlex()
	c.normalizeDrive()
	c.normalizeSync()
	c.normalizeLogging()
	c.normalizeMappings()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		c.Paths.ReportDir = defaultReportDir
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlex() {
	c.Plex.URL = strings.TrimRight(strings.TrimSpace(c.Plex.URL), "/")
	if c.Plex.URL == "" {
		c.Plex.URL = defaultPlexURL
	}
	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
	if c.Plex.Token == "" {
		if value, ok := os.LookupEnv("PLEX_TOKEN"); ok {
			c.Plex.Token = strings.TrimSpace(value)
		}
	}
	c.Plex.MovieLibrary = strings.TrimSpace(c.Plex.MovieLibrary)
	if c.Plex.MovieLibrary == "" {
		c.Plex.MovieLibrary = defaultMovieLibrary
	}
}

func (c *Config) normalizeDrive() {
	c.Drive.FolderURL = strings.TrimSpace(c.Drive.FolderURL)
	c.Drive.APIKey = strings.TrimSpace(c.Drive.APIKey)
	if c.Drive.APIKey == "" {
		if value, ok := os.LookupEnv("GOOGLE_API_KEY"); ok {
			c.Drive.APIKey = strings.TrimSpace(value)
		}
	}
	if c.Drive.PageSize <= 0 || c.Drive.PageSize > 1000 {
		c.Drive.PageSize = defaultDrivePageSize
	}
	if c.Drive.PageDelaySeconds < 0 {
		c.Drive.PageDelaySeconds = defaultDrivePageDelay
	}
}

func (c *Config) normalizeSync() {
	if c.Sync.BatchSize <= 0 {
		c.Sync.BatchSize = defaultBatchSize
	}
	if c.Sync.BatchDelayMinSeconds <= 0 {
		c.Sync.BatchDelayMinSeconds = defaultBatchDelayMinSeconds
	}
	if c.Sync.BatchDelayMaxSeconds <= 0 {
		c.Sync.BatchDelayMaxSeconds = defaultBatchDelayMaxSeconds
	}
	if c.Sync.RefreshDelaySeconds < 0 {
		c.Sync.RefreshDelaySeconds = defaultRefreshDelaySeconds
	}
	// A zero cooldown disables the automatic restart loop.
	if c.Sync.RetryCooldownMinutes < 0 {
		c.Sync.RetryCooldownMinutes = 0
	}
	c.Sync.ThemeFilename = strings.TrimSpace(c.Sync.ThemeFilename)
	if c.Sync.ThemeFilename == "" {
		c.Sync.ThemeFilename = defaultThemeFilename
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeMappings() {
	kept := make([]PathMapping, 0, len(c.PathMappings))
	for _, m := range c.PathMappings {
		m.Remote = strings.TrimSpace(m.Remote)
		m.Local = strings.TrimSpace(m.Local)
		if m.Remote == "" {
			continue
		}
		kept = append(kept, m)
	}
	c.PathMappings = kept
}
