package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Plex contains connection settings for the Plex media server.
type Plex struct {
	URL          string `toml:"url"`
	Token        string `toml:"token"`
	MovieLibrary string `toml:"movie_library"`
}

// Drive contains settings for the Google Drive folder holding theme audio.
type Drive struct {
	FolderURL        string `toml:"folder_url"`
	APIKey           string `toml:"api_key"`
	PageSize         int    `toml:"page_size"`
	PageDelaySeconds int    `toml:"page_delay_seconds"`
}

// Sync contains batch and cooldown tuning for the download run.
type Sync struct {
	BatchSize            int    `toml:"batch_size"`
	BatchDelayMinSeconds int    `toml:"batch_delay_min_seconds"`
	BatchDelayMaxSeconds int    `toml:"batch_delay_max_seconds"`
	RefreshDelaySeconds  int    `toml:"refresh_delay_seconds"`
	RetryCooldownMinutes int    `toml:"retry_cooldown_minutes"`
	ThemeFilename        string `toml:"theme_filename"`
}

// Paths contains directory configuration.
type Paths struct {
	StateDir  string `toml:"state_dir"`
	LogDir    string `toml:"log_dir"`
	ReportDir string `toml:"report_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// PathMapping rewrites one server-side path prefix to a local prefix.
// Mappings apply in file order; the first matching remote prefix wins.
type PathMapping struct {
	Remote string `toml:"remote"`
	Local  string `toml:"local"`
}

// Config encapsulates all configuration values for themesync.
//
// Configuration sections by subsystem:
//   - Plex: media server connection and movie library name
//   - Drive: cloud drive folder, API credential, listing tunables
//   - Sync: batch sizing, inter-batch delays, retry cooldown
//   - Paths: state, log, and report directories
//   - Logging: log format and level
//   - PathMappings: ordered remote-to-local prefix rewrites
type Config struct {
	Plex         Plex          `toml:"plex"`
	Drive        Drive         `toml:"drive"`
	Sync         Sync          `toml:"sync"`
	Paths        Paths         `toml:"paths"`
	Logging      Logging       `toml:"logging"`
	PathMappings []PathMapping `toml:"path_mappings"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/themesync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("themesync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state, log, and report directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir, c.Paths.ReportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
