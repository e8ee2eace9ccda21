package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/analyzer"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// Format 报告输出格式
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("不支持的输出格式: %s", name)
	}
}

// Writer 把目录列表、分析结果和操作结果写到输出
type Writer interface {
	WriteEntries(dir string, entries []scanner.Entry) error
	WriteAnalysis(report *analyzer.Report) error
	WriteResult(result *internal.OperationResult) error
	// WriteGroups 输出操作结果以及每个重复组的保留者和重复文件，用于预览
	WriteGroups(result *internal.OperationResult, groups []internal.HashGroup) error
}

func New(format Format, out io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewTextWriter(out), nil
	case FormatJSON:
		return NewJSONWriter(out), nil
	case FormatMarkdown:
		return NewMarkdownWriter(out), nil
	default:
		return nil, fmt.Errorf("不支持的输出格式: %s", format)
	}
}

const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func entryKind(e scanner.Entry) string {
	switch {
	case e.IsDir:
		return "dir"
	case e.IsRegular():
		return "file"
	default:
		return "other"
	}
}

// resultRows 操作结果的通用汇总行
func resultRows(result *internal.OperationResult) [][]string {
	return [][]string{
		{"Operation", string(result.Operation)},
		{"Directory", result.Directory},
		{"Scanned", fmt.Sprint(result.Scanned)},
		{"Moved", fmt.Sprint(result.Moved)},
		{"Skipped", fmt.Sprint(result.Skipped)},
		{"Duplicates", fmt.Sprint(result.Duplicates)},
		{"Failed", fmt.Sprint(result.Failed())},
		{"Elapsed", result.EndTime.Sub(result.StartTime).Round(time.Millisecond).String()},
	}
}

// groupRows 每个重复文件一行
func groupRows(groups []internal.HashGroup) [][]string {
	var rows [][]string
	for _, g := range groups {
		for _, dup := range g.Members[1:] {
			rows = append(rows, []string{shortDigest(g.Digest), g.Keeper(), dup})
		}
	}
	return rows
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
