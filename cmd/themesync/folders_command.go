package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"themesync/internal/reports"
)

func newFoldersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List the remote movie folders and write the discovery report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			driveClient, err := ctx.newDriveClient(cmd.Context())
			if err != nil {
				return err
			}

			folders, err := driveClient.ListMovieFolders(cmd.Context())
			if err != nil {
				return err
			}

			entries := make([]reports.FolderEntry, 0, len(folders))
			for _, folder := range folders {
				entries = append(entries, reports.FolderEntry{Title: folder.Title, Year: folder.Year})
			}
			reportPath, err := reports.New(cfg.Paths.ReportDir).Folders(entries)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, folderTable(folders))
			printStatus(out, "Folders", statusOK, fmt.Sprintf("%d discovered", len(folders)))
			printStatus(out, "Report", statusInfo, reportPath)
			return nil
		},
	}
}
