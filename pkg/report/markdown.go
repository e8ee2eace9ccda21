package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/markdown"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/analyzer"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// MarkdownWriter 生成可直接粘贴到文档中的 Markdown
type MarkdownWriter struct {
	out io.Writer
}

func NewMarkdownWriter(out io.Writer) *MarkdownWriter {
	return &MarkdownWriter{out: out}
}

func (w *MarkdownWriter) WriteEntries(dir string, entries []scanner.Entry) error {
	md := markdown.NewMarkdown(w.out)
	md.H1("Directory listing")
	md.PlainText("")
	md.PlainText(fmt.Sprintf("`%s`, %d entries", dir, len(entries)))
	md.PlainText("")

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		size := "-"
		if !e.IsDir {
			size = humanize.IBytes(uint64(e.Size))
		}
		rows = append(rows, []string{e.Name, entryKind(e), size, formatTime(e.ModTime)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Type", "Size", "Modified"},
		Rows:   rows,
	})

	return md.Build()
}

func (w *MarkdownWriter) WriteAnalysis(report *analyzer.Report) error {
	md := markdown.NewMarkdown(w.out)
	md.H1("Directory analysis")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Directory", "`" + report.Directory + "`"},
			{"Files", fmt.Sprint(report.FileCount)},
			{"Folders", fmt.Sprint(report.FolderCount)},
			{"Total size", humanize.IBytes(uint64(report.TotalSize))},
			{"Oldest", fmt.Sprintf("%s %s", formatTime(report.Oldest), report.OldestFile)},
			{"Newest", fmt.Sprintf("%s %s", formatTime(report.Newest), report.NewestFile)},
		},
	})
	md.PlainText("")

	md.H2("File types")
	md.PlainText("")
	if len(report.Types) == 0 {
		md.PlainText("No files.")
		return md.Build()
	}

	rows := make([][]string, 0, len(report.Types))
	for _, stat := range report.Types {
		rows = append(rows, []string{
			"`" + stat.Extension + "`",
			fmt.Sprint(stat.Count),
			humanize.IBytes(uint64(stat.TotalBytes)),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Extension", "Files", "Size"},
		Rows:   rows,
	})

	return md.Build()
}

func (w *MarkdownWriter) WriteResult(result *internal.OperationResult) error {
	md := markdown.NewMarkdown(w.out)
	writeResultSections(md, result)
	return md.Build()
}

func (w *MarkdownWriter) WriteGroups(result *internal.OperationResult, groups []internal.HashGroup) error {
	md := markdown.NewMarkdown(w.out)
	writeResultSections(md, result)

	md.H2("Duplicate groups")
	md.PlainText("")
	if len(groups) == 0 {
		md.PlainText("No duplicates.")
		return md.Build()
	}

	rows := groupRows(groups)
	for _, row := range rows {
		for i := range row {
			row[i] = "`" + row[i] + "`"
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Hash", "Keeper", "Duplicate"},
		Rows:   rows,
	})
	return md.Build()
}

func writeResultSections(md *markdown.Markdown, result *internal.OperationResult) {
	md.H1("Organize result")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   resultRows(result),
	})
	md.PlainText("")

	if result.Failed() > 0 {
		md.Warningf("%d file(s) could not be processed.", result.Failed())
		md.PlainText("")

		rows := make([][]string, 0, result.Failed())
		for _, f := range result.Failures {
			rows = append(rows, []string{"`" + f.Path + "`", f.Op, f.Err.Error()})
		}
		md.H2("Failures")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"File", "Step", "Error"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}
