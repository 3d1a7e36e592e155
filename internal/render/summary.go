package render

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bindery/internal/progress"
)

// summaryTable renders the per-chapter results shown under the success
// banner. Returns an empty string when no chapters completed.
func summaryTable(chapters []progress.ChapterResult) string {
	if len(chapters) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Chapter", "Title", "Output", "Duration"})

	for _, chapter := range chapters {
		title := chapter.Title
		if title == "" {
			title = fallbackTitle(chapter.OutputFile)
		}
		tw.AppendRow(table.Row{
			chapter.Number,
			title,
			chapter.OutputFile,
			fmt.Sprintf("%.1fs", chapter.DurationSeconds),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
