package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"themesync/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set plex.token and drive.api_key (or export PLEX_TOKEN and GOOGLE_API_KEY) before running themesync.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			settings := [][2]string{
				{"plex.url", cfg.Plex.URL},
				{"plex.token", maskSecret(cfg.Plex.Token)},
				{"plex.movie_library", cfg.Plex.MovieLibrary},
				{"drive.folder_url", cfg.Drive.FolderURL},
				{"drive.api_key", maskSecret(cfg.Drive.APIKey)},
				{"drive.page_size", fmt.Sprint(cfg.Drive.PageSize)},
				{"drive.page_delay_seconds", fmt.Sprint(cfg.Drive.PageDelaySeconds)},
				{"sync.batch_size", fmt.Sprint(cfg.Sync.BatchSize)},
				{"sync.batch_delay_min_seconds", fmt.Sprint(cfg.Sync.BatchDelayMinSeconds)},
				{"sync.batch_delay_max_seconds", fmt.Sprint(cfg.Sync.BatchDelayMaxSeconds)},
				{"sync.refresh_delay_seconds", fmt.Sprint(cfg.Sync.RefreshDelaySeconds)},
				{"sync.retry_cooldown_minutes", fmt.Sprint(cfg.Sync.RetryCooldownMinutes)},
				{"sync.theme_filename", cfg.Sync.ThemeFilename},
				{"paths.state_dir", cfg.Paths.StateDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"paths.report_dir", cfg.Paths.ReportDir},
				{"logging.format", cfg.Logging.Format},
				{"logging.level", cfg.Logging.Level},
				{"path_mappings", fmt.Sprintf("%d configured", len(cfg.PathMappings))},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults are shown")
			}
			fmt.Fprintln(out, settingsTable(settings))
			return nil
		},
	}
}

func maskSecret(value string) string {
	if value == "" {
		return "(unset)"
	}
	return strings.Repeat("*", 8)
}
