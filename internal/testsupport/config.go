package testsupport

import (
	"path/filepath"
	"testing"

	"themesync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Credentials are filled with placeholders so validation-sensitive code paths
// behave as they would in a configured install.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Plex.Token = "test-token"
	cfg.Drive.FolderURL = "https://drive.google.com/drive/folders/test-folder"
	cfg.Drive.APIKey = "test-key"
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportDir = filepath.Join(base, "reports")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMappings sets the path mapping table on the test config.
func WithMappings(mappings ...config.PathMapping) ConfigOption {
	return func(cfg *config.Config) {
		cfg.PathMappings = mappings
	}
}
