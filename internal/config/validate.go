package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validateDrive(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlex() error {
	if strings.TrimSpace(c.Plex.URL) == "" {
		return errors.New("plex.url must be set")
	}
	if c.Plex.Token == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/themesync/config.toml"
		}
		return fmt.Errorf("plex.token is required. Set PLEX_TOKEN env var or edit %s (create with 'themesync config init')", defaultPath)
	}
	if c.Plex.MovieLibrary == "" {
		return errors.New("plex.movie_library must be set")
	}
	return nil
}

func (c *Config) validateDrive() error {
	if c.Drive.FolderURL == "" {
		return errors.New("drive.folder_url must be set")
	}
	if c.Drive.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/themesync/config.toml"
		}
		return fmt.Errorf("drive.api_key is required. Set GOOGLE_API_KEY env var or edit %s (create with 'themesync config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.BatchDelayMaxSeconds < c.Sync.BatchDelayMinSeconds {
		return errors.New("sync.batch_delay_max_seconds must be >= sync.batch_delay_min_seconds")
	}
	if strings.ContainsAny(c.Sync.ThemeFilename, "/\\") {
		return errors.New("sync.theme_filename must be a bare filename")
	}
	return nil
}
