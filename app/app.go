package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/config"
	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/deduplicator"
	"github.com/moyu-x/file-organizer/pkg/hasher"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/organizer"
)

// GlobalOptions 所有子命令共享的参数，非空时覆盖配置文件
type GlobalOptions struct {
	ConfigFile string
	LogLevel   string
	LogFile    string
	Verbose    bool
}

// Setup 加载配置并初始化日志
func Setup(opts GlobalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Logging.File = opts.LogFile
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	logger.Get().Debug().Msg("加载配置完成")
	return cfg, nil
}

// SessionOptions 把配置转换为会话参数，非法值直接报错
func SessionOptions(cfg *config.Config) (organizer.Options, error) {
	opts := organizer.DefaultOptions()

	algorithm, err := hasher.ParseAlgorithm(cfg.Hash.Algorithm)
	if err != nil {
		return opts, err
	}
	index, err := deduplicator.ParseIndexKind(cfg.Dedup.Index)
	if err != nil {
		return opts, err
	}
	source, err := organizer.ParseDateSource(cfg.Date.Source)
	if err != nil {
		return opts, err
	}

	opts.HashAlgorithm = algorithm
	opts.IndexKind = index
	opts.DateSource = source
	opts.SniffContent = cfg.Organize.SniffContent
	if cfg.Undo.Capacity > 0 {
		opts.UndoCapacity = cfg.Undo.Capacity
	}
	if cfg.Dedup.Folder != "" {
		opts.DuplicatesFolder = cfg.Dedup.Folder
	}
	if cfg.Date.Layout != "" {
		opts.DateLayout = cfg.Date.Layout
	}
	return opts, nil
}

// NewSession 在真实文件系统上创建会话
func NewSession(opts organizer.Options) *organizer.Session {
	return organizer.NewSession(afero.NewOsFs(), opts)
}

// progressEnabled 只有 stderr 是终端时才显示进度条
func progressEnabled() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// newProgress 返回进度回调和收尾函数
// 总数变化（例如分类后进入去重阶段）时重新建一个进度条
// 非终端时改为每 10% 写一条日志
func newProgress(description string) (internal.ProgressFunc, func()) {
	if !progressEnabled() {
		return func(done, total int, _ string) {
			step := max(total/10, 1)
			if done%step == 0 || done == total {
				logger.Progress(done, total, description)
			}
		}, func() {}
	}

	var bar *progressbar.ProgressBar
	finish := func() {
		if bar != nil {
			_ = bar.Finish()
			bar = nil
		}
	}

	update := func(done, total int, _ string) {
		if bar == nil || bar.GetMax() != total || done == 1 {
			finish()
			bar = progressbar.Default(int64(total), description)
		}
		_ = bar.Set(done)
	}

	return update, finish
}
