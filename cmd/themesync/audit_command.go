package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"themesync/internal/analyze"
	"themesync/internal/reports"
)

const deletionSampleSize = 10

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit local theme files and delete orphans after confirmation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			plexClient, err := ctx.newPlexClient()
			if err != nil {
				return err
			}

			analyzer := analyze.New(cfg, plexClient, logger)
			if shouldColorize(cmd.ErrOrStderr()) {
				analyzer.SetProgressOutput(cmd.ErrOrStderr())
			}

			result, err := analyzer.Scan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printStatus(out, "With metadata", statusOK, fmt.Sprint(len(result.WithMetadata)))
			printStatus(out, "Orphaned themes", statusWarn, fmt.Sprint(len(result.WithoutMetadata)))
			printStatus(out, "No theme file", statusInfo, fmt.Sprint(len(result.NoTheme)))

			if len(result.WithoutMetadata) == 0 {
				printStatus(out, "Cleanup", statusOK, "nothing to delete")
				return nil
			}

			printSample(cmd, result.WithoutMetadata)
			if !assumeYes {
				confirmed, err := confirmDeletion(cmd, len(result.WithoutMetadata))
				if err != nil {
					return err
				}
				if !confirmed {
					printStatus(out, "Cleanup", statusInfo, "aborted; nothing deleted")
					return nil
				}
			}

			entries, err := analyzer.Delete(cmd.Context(), result.WithoutMetadata)
			if err != nil {
				return err
			}
			var deleted, failed int
			for _, entry := range entries {
				switch entry.Outcome {
				case reports.DeletionDeleted, reports.DeletionRefreshFailed:
					deleted++
				case reports.DeletionFailed:
					failed++
				}
			}
			printStatus(out, "Deleted", statusOK, fmt.Sprint(deleted))
			if failed > 0 {
				printStatus(out, "Delete failures", statusError, fmt.Sprint(failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete orphaned theme files without prompting")
	return cmd
}

func printSample(cmd *cobra.Command, items []analyze.Item) {
	out := cmd.OutOrStdout()
	sample := items
	if len(sample) > deletionSampleSize {
		sample = sample[:deletionSampleSize]
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Orphaned theme files (%d of %d):\n", len(sample), len(items))
	for _, item := range sample {
		fmt.Fprintf(out, "  %s: %s\n", item.Title, item.ThemePath)
	}
	fmt.Fprintln(out)
}

func confirmDeletion(cmd *cobra.Command, count int) (bool, error) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Delete %d orphaned theme file(s)? [y/N]: ", count)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
