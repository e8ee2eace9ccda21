package organizer

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/analyzer"
	"github.com/moyu-x/file-organizer/pkg/category"
	"github.com/moyu-x/file-organizer/pkg/deduplicator"
	"github.com/moyu-x/file-organizer/pkg/hasher"
	"github.com/moyu-x/file-organizer/pkg/history"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/mover"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// DateSource 按日期整理时使用的时间
type DateSource string

const (
	DateCreated  DateSource = "created"
	DateModified DateSource = "modified"
	DateExif     DateSource = "exif"
)

func ParseDateSource(name string) (DateSource, error) {
	switch DateSource(strings.ToLower(strings.TrimSpace(name))) {
	case "", DateCreated:
		return DateCreated, nil
	case DateModified:
		return DateModified, nil
	case DateExif:
		return DateExif, nil
	default:
		return "", fmt.Errorf("不支持的日期来源: %s", name)
	}
}

// Options 会话配置
type Options struct {
	UndoCapacity     int
	HashAlgorithm    hasher.Algorithm
	IndexKind        deduplicator.IndexKind
	DuplicatesFolder string
	SniffContent     bool
	DateSource       DateSource
	DateLayout       string
	IncludeHidden    bool
}

func DefaultOptions() Options {
	return Options{
		UndoCapacity:     internal.DefaultUndoCapacity,
		HashAlgorithm:    hasher.SHA256,
		IndexKind:        deduplicator.MemoryIndex,
		DuplicatesFolder: internal.DefaultDuplicatesFolder,
		DateSource:       DateCreated,
		DateLayout:       internal.DefaultDateLayout,
		IncludeHidden:    true,
	}
}

// Session 一次运行内共享的状态：分类表、撤销日志和各个组件
// 同一时间只允许一个整理或去重操作
type Session struct {
	id   string
	fs   afero.Fs
	opts Options
	log  zerolog.Logger

	table   *category.Table
	history *history.Log
	lister  *scanner.Lister
	hasher  *hasher.Hasher
	mover   *mover.Engine
	finder  *deduplicator.Finder

	busy     atomic.Bool
	progress internal.ProgressFunc
}

func NewSession(fs afero.Fs, opts Options) *Session {
	defaults := DefaultOptions()
	if opts.HashAlgorithm == "" {
		opts.HashAlgorithm = defaults.HashAlgorithm
	}
	if opts.IndexKind == "" {
		opts.IndexKind = defaults.IndexKind
	}
	if opts.DuplicatesFolder == "" {
		opts.DuplicatesFolder = defaults.DuplicatesFolder
	}
	if opts.DateSource == "" {
		opts.DateSource = defaults.DateSource
	}
	if opts.DateLayout == "" {
		opts.DateLayout = defaults.DateLayout
	}

	id := uuid.NewString()
	s := &Session{
		id:      id,
		fs:      fs,
		opts:    opts,
		log:     logger.Get().With().Str("session", id).Logger(),
		table:   category.NewDefaultTable(),
		history: history.NewLog(opts.UndoCapacity),
		lister:  scanner.NewLister(fs),
		hasher:  hasher.New(fs, opts.HashAlgorithm),
	}
	s.lister.IncludeHidden = opts.IncludeHidden
	s.mover = mover.New(fs, s.history)
	s.finder = deduplicator.NewFinder(s.lister, s.hasher, s.mover)
	s.finder.SetFolder(opts.DuplicatesFolder)
	s.finder.SetIndexKind(opts.IndexKind)

	s.log.Debug().
		Str("hash", string(opts.HashAlgorithm)).
		Str("index", string(opts.IndexKind)).
		Int("undo_capacity", s.history.Capacity()).
		Msg("会话已创建")

	return s
}

func (s *Session) ID() string {
	return s.id
}

// SetProgress 设置进度回调，整理和哈希阶段都会调用
func (s *Session) SetProgress(fn internal.ProgressFunc) {
	s.progress = fn
	s.finder.OnProgress = fn
}

// Busy 是否有操作正在进行
func (s *Session) Busy() bool {
	return s.busy.Load()
}

func (s *Session) begin() error {
	if !s.busy.CompareAndSwap(false, true) {
		return internal.ErrBusy
	}
	return nil
}

func (s *Session) end() {
	s.busy.Store(false)
}

// ListEntries 列出目录的直接子项
func (s *Session) ListEntries(dir string) ([]scanner.Entry, error) {
	return s.lister.List(dir)
}

// Analyze 只读统计目录
func (s *Session) Analyze(dir string) (*analyzer.Report, error) {
	return analyzer.Analyze(s.lister, dir)
}

// History 返回撤销日志的副本，最早的在前
func (s *Session) History() []history.FileAction {
	return s.history.Snapshot()
}

// FindAndConsolidateDuplicates 把重复文件移到 Duplicates 目录
func (s *Session) FindAndConsolidateDuplicates(dir string) (*internal.OperationResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	result, err := s.finder.Consolidate(dir)
	if err != nil {
		return nil, err
	}
	s.logResult(result)
	return result, nil
}

// FindDuplicates 只报告重复文件组，不移动
func (s *Session) FindDuplicates(dir string) ([]internal.HashGroup, *internal.OperationResult, error) {
	if err := s.begin(); err != nil {
		return nil, nil, err
	}
	defer s.end()

	return s.finder.FindGroups(dir)
}

func (s *Session) logResult(result *internal.OperationResult) {
	event := s.log.Info()
	if result.Failed() > 0 {
		event = s.log.Warn()
	}
	event.
		Str("operation", string(result.Operation)).
		Str("directory", result.Directory).
		Int("scanned", result.Scanned).
		Int("moved", result.Moved).
		Int("skipped", result.Skipped).
		Int("duplicates", result.Duplicates).
		Int("failed", result.Failed()).
		Dur("elapsed", result.EndTime.Sub(result.StartTime)).
		Msg("操作完成")
}
