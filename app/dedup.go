package app

import (
	"fmt"
	"io"

	"github.com/moyu-x/file-organizer/config"
	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/report"
)

type DedupOptions struct {
	Directory string
	Algorithm string
	Index     string
	Folder    string
	DryRun    bool
	Format    string
	Progress  bool
	Out       io.Writer
}

func RunDedup(cfg *config.Config, opts DedupOptions) (*internal.OperationResult, error) {
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.Algorithm != "" {
		cfg.Hash.Algorithm = opts.Algorithm
	}
	if opts.Index != "" {
		cfg.Dedup.Index = opts.Index
	}
	if opts.Folder != "" {
		cfg.Dedup.Folder = opts.Folder
	}

	sessionOpts, err := SessionOptions(cfg)
	if err != nil {
		return nil, err
	}
	session := NewSession(sessionOpts)

	if opts.Progress && format == report.FormatText {
		update, finish := newProgress("计算哈希")
		defer finish()
		session.SetProgress(update)
	}

	logger.Get().Info().
		Str("algorithm", string(sessionOpts.HashAlgorithm)).
		Str("index", string(sessionOpts.IndexKind)).
		Bool("dry_run", opts.DryRun).
		Msgf("查找重复文件: %s", opts.Directory)

	if opts.DryRun {
		groups, result, err := session.FindDuplicates(opts.Directory)
		if err != nil {
			return nil, fmt.Errorf("查找重复文件失败: %w", err)
		}
		for _, g := range groups {
			logger.Get().Debug().
				Str("hash", g.Digest).
				Str("keeper", g.Keeper()).
				Strs("duplicates", g.Members[1:]).
				Msg("重复文件组（预览，不移动）")
		}
		return result, writeGroups(format, opts.Out, result, groups)
	}

	result, err := session.FindAndConsolidateDuplicates(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("去重失败: %w", err)
	}
	return result, writeResult(format, opts.Out, result)
}

func writeGroups(format report.Format, out io.Writer, result *internal.OperationResult, groups []internal.HashGroup) error {
	if out == nil {
		return nil
	}
	w, err := report.New(format, out)
	if err != nil {
		return err
	}
	return w.WriteGroups(result, groups)
}
