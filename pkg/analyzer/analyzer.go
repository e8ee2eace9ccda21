package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// NoExtension 没有扩展名的文件在统计中的名称
const NoExtension = "(none)"

// FileTypeStat 某个扩展名的文件数和总大小
type FileTypeStat struct {
	Extension  string `json:"extension"`
	Count      int    `json:"count"`
	TotalBytes int64  `json:"total_bytes"`
}

// Report 目录分析结果，只读
type Report struct {
	Directory   string         `json:"directory"`
	FileCount   int            `json:"file_count"`
	FolderCount int            `json:"folder_count"`
	TotalSize   int64          `json:"total_size"`
	Types       []FileTypeStat `json:"types"`
	Oldest      time.Time      `json:"oldest,omitzero"`
	Newest      time.Time      `json:"newest,omitzero"`
	OldestFile  string         `json:"oldest_file,omitempty"`
	NewestFile  string         `json:"newest_file,omitempty"`
}

// Analyze 统计 dir 的直接子项，不修改任何文件
func Analyze(lister *scanner.Lister, dir string) (*Report, error) {
	entries, err := lister.List(dir)
	if err != nil {
		return nil, err
	}
	return Summarize(dir, entries), nil
}

// Summarize 根据已列出的目录项生成报告
func Summarize(dir string, entries []scanner.Entry) *Report {
	report := &Report{Directory: dir}
	byExt := make(map[string]*FileTypeStat)

	for _, e := range entries {
		if e.IsDir {
			report.FolderCount++
			continue
		}
		if !e.IsRegular() {
			continue
		}

		report.FileCount++
		report.TotalSize += e.Size

		ext := strings.ToLower(e.Extension)
		if ext == "" || ext == "." {
			ext = NoExtension
		}
		stat, ok := byExt[ext]
		if !ok {
			stat = &FileTypeStat{Extension: ext}
			byExt[ext] = stat
		}
		stat.Count++
		stat.TotalBytes += e.Size

		if report.OldestFile == "" || e.ModTime.Before(report.Oldest) {
			report.Oldest = e.ModTime
			report.OldestFile = e.Name
		}
		if report.NewestFile == "" || e.ModTime.After(report.Newest) {
			report.Newest = e.ModTime
			report.NewestFile = e.Name
		}
	}

	report.Types = make([]FileTypeStat, 0, len(byExt))
	for _, stat := range byExt {
		report.Types = append(report.Types, *stat)
	}
	// 按总大小降序，相同时按扩展名
	sort.Slice(report.Types, func(i, j int) bool {
		a, b := report.Types[i], report.Types[j]
		if a.TotalBytes != b.TotalBytes {
			return a.TotalBytes > b.TotalBytes
		}
		return a.Extension < b.Extension
	})

	logger.Get().Info().
		Str("directory", dir).
		Int("files", report.FileCount).
		Int("folders", report.FolderCount).
		Int64("bytes", report.TotalSize).
		Msg("目录分析完成")

	return report
}
