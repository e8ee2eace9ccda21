package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/analyzer"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// TextWriter 终端表格输出
type TextWriter struct {
	out io.Writer
}

func NewTextWriter(out io.Writer) *TextWriter {
	return &TextWriter{out: out}
}

func (w *TextWriter) WriteEntries(dir string, entries []scanner.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		size := "-"
		if !e.IsDir {
			size = humanize.IBytes(uint64(e.Size))
		}
		rows = append(rows, []string{e.Name, entryKind(e), size, formatTime(e.ModTime)})
	}

	_, err := fmt.Fprintf(w.out, "%s (%d)\n%s\n", dir, len(entries),
		renderTable([]string{"Name", "Type", "Size", "Modified"}, rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
	return err
}

func (w *TextWriter) WriteAnalysis(report *analyzer.Report) error {
	summary := [][]string{
		{"Directory", report.Directory},
		{"Files", fmt.Sprint(report.FileCount)},
		{"Folders", fmt.Sprint(report.FolderCount)},
		{"Total size", humanize.IBytes(uint64(report.TotalSize))},
		{"Oldest", fmt.Sprintf("%s %s", formatTime(report.Oldest), report.OldestFile)},
		{"Newest", fmt.Sprintf("%s %s", formatTime(report.Newest), report.NewestFile)},
	}

	types := make([][]string, 0, len(report.Types))
	for _, stat := range report.Types {
		types = append(types, []string{
			stat.Extension,
			fmt.Sprint(stat.Count),
			humanize.IBytes(uint64(stat.TotalBytes)),
		})
	}

	_, err := fmt.Fprintf(w.out, "%s\n%s\n",
		renderTable([]string{"Property", "Value"}, summary, nil),
		renderTable([]string{"Extension", "Files", "Size"}, types,
			[]columnAlignment{alignLeft, alignRight, alignRight}))
	return err
}

func (w *TextWriter) WriteResult(result *internal.OperationResult) error {
	if _, err := fmt.Fprintln(w.out, renderTable([]string{"Property", "Value"}, resultRows(result), nil)); err != nil {
		return err
	}

	if result.Failed() == 0 {
		return nil
	}

	rows := make([][]string, 0, result.Failed())
	for _, f := range result.Failures {
		rows = append(rows, []string{f.Path, f.Op, f.Err.Error()})
	}
	_, err := fmt.Fprintln(w.out, renderTable([]string{"File", "Step", "Error"}, rows, nil))
	return err
}

func (w *TextWriter) WriteGroups(result *internal.OperationResult, groups []internal.HashGroup) error {
	if err := w.WriteResult(result); err != nil {
		return err
	}
	if len(groups) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w.out, renderTable([]string{"Hash", "Keeper", "Duplicate"}, groupRows(groups), nil))
	return err
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
