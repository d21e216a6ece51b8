package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"themesync/internal/config"
	"themesync/internal/logging"
	"themesync/internal/services/drive"
	"themesync/internal/services/plex"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

func (c *commandContext) newPlexClient() (*plex.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return plex.NewClient(cfg.Plex.URL, cfg.Plex.Token, nil), nil
}

func (c *commandContext) newDriveClient(ctx context.Context) (*drive.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	folderID, err := drive.FolderIDFromURL(cfg.Drive.FolderURL)
	if err != nil {
		return nil, err
	}
	svc, err := drive.NewService(ctx, cfg.Drive.APIKey)
	if err != nil {
		return nil, err
	}
	pageDelay := time.Duration(cfg.Drive.PageDelaySeconds) * time.Second
	return drive.NewClient(svc, folderID, cfg.Drive.PageSize, pageDelay), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
