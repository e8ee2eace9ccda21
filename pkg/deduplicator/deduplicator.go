package deduplicator

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/hasher"
	"github.com/moyu-x/file-organizer/pkg/logger"
	"github.com/moyu-x/file-organizer/pkg/mover"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// Finder 找出目录下内容相同的文件，把保留者以外的文件移到 Duplicates 目录
type Finder struct {
	lister    *scanner.Lister
	hasher    *hasher.Hasher
	mover     *mover.Engine
	folder    string
	indexKind IndexKind

	// OnProgress 每处理完一个文件调用一次，可为空
	OnProgress internal.ProgressFunc
}

func NewFinder(lister *scanner.Lister, h *hasher.Hasher, m *mover.Engine) *Finder {
	return &Finder{
		lister:    lister,
		hasher:    h,
		mover:     m,
		folder:    internal.DefaultDuplicatesFolder,
		indexKind: MemoryIndex,
	}
}

func (f *Finder) SetFolder(name string) {
	if name != "" {
		f.folder = name
	}
}

func (f *Finder) SetIndexKind(kind IndexKind) {
	f.indexKind = kind
}

// FindGroups 只扫描和分组，不移动任何文件
// 无法计算哈希的文件记入失败列表并跳过
func (f *Finder) FindGroups(dir string) ([]internal.HashGroup, *internal.OperationResult, error) {
	result := &internal.OperationResult{
		Operation: internal.ModeDuplicates,
		Directory: dir,
		StartTime: time.Now(),
	}

	files, err := f.lister.Files(dir)
	if err != nil {
		return nil, result, err
	}

	index, err := NewIndex(f.indexKind)
	if err != nil {
		return nil, result, fmt.Errorf("创建摘要索引失败: %w", err)
	}
	defer index.Close()

	logger.Get().Info().Msgf("开始计算哈希，共 %d 个文件: %s", len(files), dir)

	for i, file := range files {
		result.Scanned++

		digest, err := f.hasher.Sum(file.Path)
		if err != nil {
			logger.Get().Error().Err(err).Msgf("计算哈希失败，跳过: %s", file.Path)
			result.AddFailure(file.Path, "hash", err)
		} else if err := index.Add(digest, file.Path); err != nil {
			logger.Get().Error().Err(err).Msgf("写入摘要索引失败: %s", file.Path)
			result.AddFailure(file.Path, "index", err)
		}

		if f.OnProgress != nil {
			f.OnProgress(i+1, len(files), file.Path)
		}
	}

	groups, err := index.Groups()
	if err != nil {
		return nil, result, fmt.Errorf("读取摘要分组失败: %w", err)
	}

	duplicates := groups[:0]
	for _, g := range groups {
		if g.IsDuplicate() {
			duplicates = append(duplicates, g)
			result.Duplicates += len(g.Members) - 1
		}
	}

	result.EndTime = time.Now()
	return duplicates, result, nil
}

// Consolidate 扫描 dir 的直接子文件，每组保留第一个，其余移到 dir/Duplicates
func (f *Finder) Consolidate(dir string) (*internal.OperationResult, error) {
	groups, result, err := f.FindGroups(dir)
	if err != nil {
		return result, err
	}

	if len(groups) == 0 {
		logger.Get().Info().Msgf("未发现重复文件: %s", dir)
		result.EndTime = time.Now()
		return result, nil
	}

	dupDir := filepath.Join(dir, f.folder)

	for _, g := range groups {
		logger.Get().Debug().
			Str("hash", g.Digest).
			Str("keeper", g.Keeper()).
			Int("count", len(g.Members)).
			Msg("发现重复文件组")

		for _, path := range g.Members[1:] {
			if _, err := f.mover.Move(path, dupDir, filepath.Base(path)); err != nil {
				logger.Get().Error().Err(err).Msgf("移动重复文件失败: %s", path)
				result.AddFailure(path, "move", err)
				continue
			}
			result.Moved++
		}
	}

	result.EndTime = time.Now()
	logger.Get().Info().Msgf("去重完成: %d 组，移动 %d 个重复文件，失败 %d 个", len(groups), result.Moved, result.Failed())
	return result, nil
}
