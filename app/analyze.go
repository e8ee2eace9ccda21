package app

import (
	"io"

	"github.com/moyu-x/file-organizer/config"
	"github.com/moyu-x/file-organizer/pkg/analyzer"
	"github.com/moyu-x/file-organizer/pkg/organizer"
	"github.com/moyu-x/file-organizer/pkg/report"
)

type ListOptions struct {
	Directory string
	Category  string
	Sort      string
	Sniff     bool
	Format    string
	Out       io.Writer
}

// RunList 列出目录的直接子项，可按分类过滤并排序
func RunList(cfg *config.Config, opts ListOptions) error {
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	sortKey, desc, err := organizer.ParseSort(opts.Sort)
	if err != nil {
		return err
	}
	if opts.Sniff {
		cfg.Organize.SniffContent = true
	}
	sessionOpts, err := SessionOptions(cfg)
	if err != nil {
		return err
	}

	entries, err := NewSession(sessionOpts).QueryEntries(opts.Directory, organizer.ListQuery{
		Category:   opts.Category,
		SortBy:     sortKey,
		Descending: desc,
	})
	if err != nil {
		return err
	}

	w, err := report.New(format, opts.Out)
	if err != nil {
		return err
	}
	return w.WriteEntries(opts.Directory, entries)
}

// RunAnalyze 统计目录并按指定格式输出
func RunAnalyze(cfg *config.Config, dir, formatName string, out io.Writer) (*analyzer.Report, error) {
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	opts, err := SessionOptions(cfg)
	if err != nil {
		return nil, err
	}

	result, err := NewSession(opts).Analyze(dir)
	if err != nil {
		return nil, err
	}

	w, err := report.New(format, out)
	if err != nil {
		return nil, err
	}
	return result, w.WriteAnalysis(result)
}
