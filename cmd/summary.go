package cmd

import (
	"strconv"

	"alsdump/als"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func renderClipTable(res *als.ParseResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "Path"})

	for i, c := range res.AudioClips {
		tw.AppendRow(table.Row{i + 1, strconv.FormatFloat(c.Start, 'f', -1, 64), c.Path})
	}
	tw.AppendFooter(table.Row{"", strconv.Itoa(len(res.AudioClips)) + " clips", strconv.Itoa(len(res.Paths)) + " unique paths"})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
	})
	return tw.Render()
}
