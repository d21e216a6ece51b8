package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"themesync/internal/services/drive"
)

// folderTable renders the remote movie folder listing, years right-aligned.
// Folders without a parenthesized year show an empty cell.
func folderTable(folders []drive.Folder) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Title", "Year"})
	for _, folder := range folders {
		tw.AppendRow(table.Row{folder.Title, folder.Year})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// settingsTable renders the effective configuration as setting/value pairs.
func settingsTable(settings [][2]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Setting", "Value"})
	for _, setting := range settings {
		tw.AppendRow(table.Row{setting[0], setting[1]})
	}
	return tw.Render()
}
