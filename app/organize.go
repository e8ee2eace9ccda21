package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/moyu-x/file-organizer/config"
	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/report"
)

type OrganizeOptions struct {
	Directory  string
	By         string
	Sniff      bool
	DateSource string
	DateLayout string
	Format     string
	Progress   bool
	Out        io.Writer
}

// ParseMode 解析 --by 参数
func ParseMode(by string) (internal.OperationMode, error) {
	switch internal.OperationMode(strings.ToLower(strings.TrimSpace(by))) {
	case "", internal.ModeCategory:
		return internal.ModeCategory, nil
	case internal.ModeExtension, "ext":
		return internal.ModeExtension, nil
	case internal.ModeAlphabetical, "alphabetical":
		return internal.ModeAlphabetical, nil
	case internal.ModeDate:
		return internal.ModeDate, nil
	default:
		return "", fmt.Errorf("不支持的整理方式: %s", by)
	}
}

func RunOrganize(cfg *config.Config, opts OrganizeOptions) (*internal.OperationResult, error) {
	mode, err := ParseMode(opts.By)
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	if opts.Sniff {
		cfg.Organize.SniffContent = true
	}
	if opts.DateSource != "" {
		cfg.Date.Source = opts.DateSource
	}
	if opts.DateLayout != "" {
		cfg.Date.Layout = opts.DateLayout
	}

	sessionOpts, err := SessionOptions(cfg)
	if err != nil {
		return nil, err
	}
	session := NewSession(sessionOpts)

	if opts.Progress && format == report.FormatText {
		update, finish := newProgress("整理中")
		defer finish()
		session.SetProgress(update)
	}

	logger.Get().Info().Msgf("整理目录: %s (%s)", opts.Directory, mode)

	var result *internal.OperationResult
	switch mode {
	case internal.ModeExtension:
		result, err = session.OrganizeByExtensionFolder(opts.Directory)
	case internal.ModeAlphabetical:
		result, err = session.OrganizeAlphabetically(opts.Directory)
	case internal.ModeDate:
		result, err = session.OrganizeByDate(opts.Directory)
	default:
		result, err = session.OrganizeByCategory(opts.Directory)
	}
	if err != nil {
		return nil, fmt.Errorf("整理失败: %w", err)
	}

	if err := writeResult(format, opts.Out, result); err != nil {
		return result, err
	}
	return result, nil
}

func writeResult(format report.Format, out io.Writer, result *internal.OperationResult) error {
	if out == nil {
		return nil
	}
	w, err := report.New(format, out)
	if err != nil {
		return err
	}
	return w.WriteResult(result)
}
