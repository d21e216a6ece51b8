package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"themesync/internal/runstate"
	enginesync "themesync/internal/sync"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Download missing theme music and refresh the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			lock := flock.New(filepath.Join(cfg.Paths.StateDir, "themesync.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another themesync run is already in progress")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			store, err := runstate.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			plexClient, err := ctx.newPlexClient()
			if err != nil {
				return err
			}
			driveClient, err := ctx.newDriveClient(cmd.Context())
			if err != nil {
				return err
			}

			engine := enginesync.New(cfg, plexClient, driveClient, store, logger)
			result, runErr := engine.RunUntilComplete(cmd.Context())
			if result != nil {
				printSyncSummary(cmd, result)
			}
			return runErr
		},
	}
}

func printSyncSummary(cmd *cobra.Command, result *enginesync.Result) {
	out := cmd.OutOrStdout()

	mode := "new run"
	if result.Resumed {
		mode = "resumed run"
	}
	printStatus(out, "Run", statusInfo, fmt.Sprintf("%s %s", mode, result.RunID))
	if !result.Resumed {
		printStatus(out, "Remote folders", statusInfo, fmt.Sprintf("%d discovered", result.Folders))
		printStatus(out, "Unmatched movies", statusInfo, fmt.Sprint(result.Unmatched))
	}
	printStatus(out, "Queued", statusInfo, fmt.Sprint(result.Queued))
	printStatus(out, "Downloaded", statusOK, fmt.Sprint(len(result.Downloaded)))
	if len(result.Missing) > 0 {
		printStatus(out, "No theme in folder", statusWarn, fmt.Sprint(len(result.Missing)))
	}
	if len(result.Failed) > 0 {
		printStatus(out, "Failed", statusError, fmt.Sprint(len(result.Failed)))
	}
	if result.RateLimited {
		printStatus(out, "Rate limited", statusWarn,
			fmt.Sprintf("%d items saved; run sync again later to continue", result.Remaining))
	}
	refreshed := fmt.Sprint(result.Refreshed)
	if result.RefreshFailed > 0 {
		refreshed = fmt.Sprintf("%d (%d failed)", result.Refreshed, result.RefreshFailed)
	}
	printStatus(out, "Library refreshes", statusInfo, refreshed)
}
